// Command html2wf converts HTML+CSS into per-element resolved styles with
// generated class names.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Strict audit failures already printed their issues
		if !errors.Is(err, errStrictAudit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
