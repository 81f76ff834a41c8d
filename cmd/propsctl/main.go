// Command propsctl inspects, converts, evaluates and compares header lists
// stored as FITS cards, YAML card lists or JSON documents.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
