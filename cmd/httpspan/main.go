// Command httpspan parses HTTP/1.x message streams and prints the parse events.
//
// Each file argument, or stdin without arguments, is treated as one connection.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
