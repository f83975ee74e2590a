package main

import "github.com/jquagga/tr-log-analyzer/internal/cmd"

func main() {
	cmd.Execute()
}
