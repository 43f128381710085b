// Package main provides the CLI entrypoint for dupgen.
//
// dupgen is a go:generate tool that, for every type annotated with
// //dupgen:derive:
//   - Derives a HeapSizeOfChildren method summing the heap size of all fields
//   - Generates the companion record <Type>Bson with debug and JSON forms
//   - Marks the type with the duplicate.Marker capability
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
