// Command vergleichsrechner compares a single premium invested in a
// Fondspolice with the same amount in a Fondssparplan.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
