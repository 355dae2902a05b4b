package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Store keeps media files outside the database. Rows only ever hold the public URL
// returned by Upload.
type Store interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) (url string, err error)
	// Delete removes the object behind url. Deleting a missing object is not an error.
	Delete(ctx context.Context, url string) error
	// Owns reports whether url points into this store.
	Owns(url string) bool
}

// NewKey builds a collision-free object key under prefix, keeping the file extension.
func NewKey(prefix, filename string) string {
	return path.Join(prefix, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

// publicURLs maps object keys to and from the public URLs the store serves them at.
type publicURLs struct {
	base string
}

func newPublicURLs(base string) publicURLs {
	return publicURLs{base: strings.TrimRight(base, "/")}
}

func (p publicURLs) url(key string) string {
	return p.base + "/" + strings.TrimLeft(key, "/")
}

func (p publicURLs) key(url string) (string, bool) {
	if p.base == "" {
		return "", false
	}
	rest, ok := strings.CutPrefix(url, p.base+"/")
	if !ok || rest == "" {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}

func (p publicURLs) mustKey(url string) (string, error) {
	key, ok := p.key(url)
	if !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrForeignBlob, url)
	}
	return key, nil
}

// Disabled is used when no blob provider is configured. Reads of existing URLs keep
// working; anything that would touch storage fails.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", errs.NewBlobStoreDisabledError()
}

func (Disabled) Delete(context.Context, string) error {
	return errs.NewBlobStoreDisabledError()
}

func (Disabled) Owns(string) bool {
	return false
}
