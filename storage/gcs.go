package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"google.golang.org/api/option"
)

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	PublicBaseURL   string
	// MakePublic grants allUsers read on each object. Leave off for uniform bucket-level access.
	MakePublic bool
}

type GCSStore struct {
	client     *gcs.Client
	bucket     string
	makePublic bool
	urls       publicURLs
}

func NewGCSStore(ctx context.Context, c GCSConfig) (*GCSStore, error) {
	if c.Bucket == "" {
		return nil, errs.NewConfigError("GCS_BUCKET", errors.New("bucket is required"))
	}

	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gcs client: %w", err)
	}

	return &GCSStore{
		client:     client,
		bucket:     c.Bucket,
		makePublic: c.MakePublic,
		urls:       newPublicURLs(gcsPublicBase(c)),
	}, nil
}

func gcsPublicBase(c GCSConfig) string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s", c.Bucket)
}

var _ io.Closer = (*GCSStore)(nil)

// Close releases the underlying client.
func (s *GCSStore) Close() error { return s.client.Close() }

func (s *GCSStore) Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if size > 0 && size < int64(w.ChunkSize) {
		// single request upload for small files
		w.ChunkSize = 0
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errs.NewBlobStoreError("upload "+key, err)
	}
	if err := w.Close(); err != nil {
		return "", errs.NewBlobStoreError("upload "+key, err)
	}

	if s.makePublic {
		if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
			return "", errs.NewBlobStoreError("publish "+key, err)
		}
	}

	return s.urls.url(key), nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	key, err := s.urls.mustKey(url)
	if err != nil {
		return err
	}

	err = s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return errs.NewBlobStoreError("delete "+key, err)
	}
	return nil
}

func (s *GCSStore) Owns(url string) bool {
	_, ok := s.urls.key(url)
	return ok
}
