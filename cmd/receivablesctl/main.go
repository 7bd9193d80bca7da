package main

import "github.com/SscSPs/receivables_app/internal/cli"

func main() {
	cli.Execute()
}
