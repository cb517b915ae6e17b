// Command jnigen generates the cgo exports and Java native declarations for
// Go functions that implement Java native methods.
//
// Typical use is a go:generate line in the package holding the functions:
//
//	//go:generate go run github.com/wippyai/jnibind/cmd/jnigen generate --java-out java
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
