package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileTx replaces a single file atomically. Content is written to a sibling
// temp file and renamed over the target on commit, so readers never observe
// a partially written layout.
type FileTx struct {
	path      string // Target file
	tempPath  string // Sibling <name>.tmp.<timestamp>
	mode      os.FileMode
	written   bool
	committed bool
}

// NewFileTx creates a transaction for path.
func NewFileTx(path string) *FileTx {
	return &FileTx{
		path:     path,
		tempPath: fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano()),
		mode:     0644,
	}
}

// Begin prepares the parent directory and keeps the mode of an existing target.
func (tx *FileTx) Begin() error {
	if err := os.MkdirAll(filepath.Dir(tx.path), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	info, err := os.Stat(tx.path)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", tx.path)
		}
		tx.mode = info.Mode().Perm()
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("stat target: %w", err)
	}
	return nil
}

// Write stages content in the temp file.
func (tx *FileTx) Write(content []byte) error {
	if tx.committed {
		return fmt.Errorf("transaction already committed")
	}

	f, err := os.OpenFile(tx.tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, tx.mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	tx.written = true
	return nil
}

// Commit renames the temp file over the target.
func (tx *FileTx) Commit() error {
	if tx.committed {
		return fmt.Errorf("transaction already committed")
	}
	if !tx.written {
		return fmt.Errorf("nothing written")
	}

	if err := os.Rename(tx.tempPath, tx.path); err != nil {
		return fmt.Errorf("commit %s: %w", tx.path, err)
	}

	tx.committed = true
	return nil
}

// Rollback removes the temp file, leaving the target untouched.
func (tx *FileTx) Rollback() error {
	if tx.committed {
		return fmt.Errorf("cannot rollback committed transaction")
	}

	if err := os.Remove(tx.tempPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// TempPath returns the path of the staged file.
func (tx *FileTx) TempPath() string {
	return tx.tempPath
}
