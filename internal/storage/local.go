package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes blobs under a fixed upload root on disk. References are
// paths relative to that root ("files/<key>.<ext>"), never absolute, so they
// stay distinguishable from remote URLs.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "files"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (l *LocalStore) Put(_ context.Context, content []byte, ext string) (string, error) {
	ref := objectName("files", ext)
	if err := os.WriteFile(filepath.Join(l.baseDir, ref), content, 0644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return ref, nil
}

// Delete removes the blob if present. Deleting an already-absent file is not
// an error.
func (l *LocalStore) Delete(_ context.Context, reference string) error {
	err := os.Remove(filepath.Join(l.baseDir, reference))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
