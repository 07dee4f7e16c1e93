package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"nta-reimbursement/internal/shared/storage/object"
)

// Service stores uploaded files under generated names.
type Service struct {
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store}
}

// Upload writes r under a fresh stored name that keeps the extension of
// originalName. size is the content length when known, or -1.
func (s *Service) Upload(ctx context.Context, originalName string, size int64, r io.Reader) (File, error) {
	if s == nil || s.Store == nil {
		return File{}, errors.New("upload store not configured")
	}
	if r == nil {
		return File{}, fmt.Errorf("%w: file content is required", ErrInvalidInput)
	}

	stored := StoredName(uuid.NewString(), originalName)
	written, err := s.Store.SaveWithKey(ctx, stored, "application/octet-stream", size, r)
	if err != nil {
		return File{}, fmt.Errorf("save upload %s: %w", stored, err)
	}
	return File{StoredName: stored, OriginalName: originalName, Size: written}, nil
}

// Download opens a stored file. The caller must close the body.
func (s *Service) Download(ctx context.Context, storedName string) (*object.Object, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("upload store not configured")
	}
	if !object.ValidKey(storedName) {
		return nil, ErrNotFound
	}
	obj, err := s.Store.Open(ctx, storedName)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open upload %s: %w", storedName, err)
	}
	return obj, nil
}

// Extension returns the text after the last dot of the base name, or "" when
// there is none. Client paths using either separator are reduced to the base.
func Extension(originalName string) string {
	base := path.Base(strings.ReplaceAll(originalName, `\`, "/"))
	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}

// StoredName joins id and the extension of originalName.
func StoredName(id, originalName string) string {
	ext := Extension(originalName)
	if ext == "" || !object.ValidKey(id+"."+ext) {
		return id
	}
	return id + "." + ext
}
