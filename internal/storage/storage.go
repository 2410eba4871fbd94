package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
)

// ErrMalformedReference is returned when a stored reference cannot be
// decomposed into an object key on delete.
var ErrMalformedReference = errors.New("malformed blob reference")

// BlobStore is the contract shared by the local-disk and object-storage
// backends. Put stores the content under a freshly generated key and returns
// the reference later persisted on the file record; Delete removes the blob
// behind a reference previously returned by Put.
type BlobStore interface {
	Put(ctx context.Context, content []byte, ext string) (string, error)
	Delete(ctx context.Context, reference string) error
}

// IsRemoteReference reports whether a stored reference belongs to the remote
// backend. Remote references are absolute URLs; anything without a scheme
// marker is a local relative path. This shape is the wire contract with the
// listing frontend, so it must not change.
func IsRemoteReference(reference string) bool {
	return strings.Contains(reference, "://")
}

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomKey returns an n-character alphanumeric blob key. Keys are random
// rather than sequential so concurrent puts never collide and the original
// filename never leaks into the backend.
func randomKey(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("storage: crypto/rand unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = keyAlphabet[int(b)%len(keyAlphabet)]
	}
	return string(buf)
}

// objectName joins a random key with the file extension, e.g. "files/<key>.jpg".
func objectName(prefix, ext string) string {
	name := prefix + "/" + randomKey(40)
	if ext != "" {
		name += "." + ext
	}
	return name
}
