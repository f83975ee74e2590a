package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jquagga/tr-log-analyzer/internal/model"
)

// rule is one entry of the classification table. The first rule whose
// pattern matches decides the outcome.
type rule struct {
	class model.CallClass
	re    *regexp.Regexp
}

// Classifier maps event text to a call outcome.
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{model.Excluded, regexp.MustCompile(`Not recording talkgroup`)},
			{model.Encrypted, regexp.MustCompile(`(?:Not Recording: )?ENCRYPTED`)},
			{model.UnknownTalkgroup, regexp.MustCompile(`TG not in Talkgroup File`)},
			{model.NoSourceAvailable, regexp.MustCompile(`no source covering Freq`)},
			{model.Standard, regexp.MustCompile(`Call Elapsed:\s+(\d+)`)},
		},
	}
}

// Classify returns the outcome for text. Text matching no rule is
// Unclassified. An error is returned only when the elapsed duration does not
// fit an int.
func (c *Classifier) Classify(text string) (model.Outcome, error) {
	for _, r := range c.rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r.class != model.Standard {
			return model.Outcome{Class: r.class}, nil
		}
		d, err := strconv.Atoi(m[1])
		if err != nil {
			return model.Outcome{}, fmt.Errorf("%w: call elapsed %q: %v", ErrConversion, m[1], err)
		}
		return model.StandardOutcome(d), nil
	}
	return model.Outcome{Class: model.Unclassified}, nil
}

// Parser combines the line matcher and the classifier.
type Parser struct {
	lines      *LineMatcher
	classifier *Classifier
}

func New() *Parser {
	return &Parser{
		lines:      NewLineMatcher(),
		classifier: NewClassifier(),
	}
}

// Parse turns one raw line into a classified call event. ok is false for
// lines that are not call lines.
func (p *Parser) Parse(raw string) (ev model.CallEvent, ok bool, err error) {
	h, ok, err := p.lines.Match(raw)
	if !ok || err != nil {
		return model.CallEvent{}, ok, err
	}

	out, err := p.classifier.Classify(h.EventText)
	if err != nil {
		return model.CallEvent{}, true, err
	}

	return model.CallEvent{Header: h, Outcome: out}, true, nil
}
