package config

import (
	"fmt"
	"io"
	"os"
)

// Exitf writes a formatted message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	writeExit(os.Stderr, format, args...)
	os.Exit(1)
}

func writeExit(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
