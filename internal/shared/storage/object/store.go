package object

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Object is an opened stored object. Callers must close Body.
type Object struct {
	Body io.ReadCloser
	Size int64
}

// ObjectStore defines the contract for saving and retrieving binary objects.
// SaveWithKey takes the content length when known, or -1.
type ObjectStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, size int64, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (*Object, error)
}

// ValidKey reports whether key is a flat, non-hidden object name.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, ".") {
		return false
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return false
	}
	return true
}
