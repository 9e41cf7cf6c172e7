// Command statcard-render renders a stat card to a file or stdout without
// starting the web service.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
