// Package main provides the pprl CLI application.
// pprl links records of two data holders without revealing plaintext
// identifiers to the other party or the matching intermediary.
package main

import (
	"github.com/recordlink/pprl/cmd"
)

func main() {
	cmd.Execute()
}
