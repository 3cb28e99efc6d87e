// Package main is the entry point for the modecitation CLI.
package main

import "modecitation.dev/pkg/modecitation/cmd"

func main() {
	cmd.Execute()
}
