// calc - adds two integers.
//
// Usage:
//   calc <number1> <number2>

package main

import (
	"os"

	"github.com/piwi3910/PartView/internal/calc"
)

func main() {
	os.Exit(calc.Run(os.Args[1:], os.Stdout, os.Stderr))
}
