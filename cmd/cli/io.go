package main

import (
	"fmt"
	"io"
	"os"
)

func readInput(in io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}

func writeOutput(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	if err == nil && (len(data) == 0 || data[len(data)-1] != '\n') {
		_, err = fmt.Fprintln(w)
	}
	return err
}
