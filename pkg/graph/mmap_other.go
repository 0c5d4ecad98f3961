//go:build !unix

package graph

import "os"

// Without mmap the files are read into memory.
func mapFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func unmapFile([]byte) error { return nil }
