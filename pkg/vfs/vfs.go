// Package vfs is the minimal glob/remove abstraction the ls/rm operations
// of the orchestrator consume. File-source ingestion itself stays out of
// scope; this only backs the two filesystem-adjacent operations the
// public surface exposes.
package vfs

import (
	"os"
	"path/filepath"
)

// FS is the filesystem contract ls/rm are built on.
type FS interface {
	GlobAll(pattern string) ([]string, error)
	Remove(path string) error
}

// Local is an FS backed by the local filesystem, used by the CLI and
// tests.
type Local struct{}

func (Local) GlobAll(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

func (Local) Remove(path string) error {
	return os.Remove(path)
}
