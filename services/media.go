package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"sync"

	"github.com/rpupo63/portfolio-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UploadFile is a file waiting to be sent to the blob store.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadedFile describes a stored blob.
type UploadedFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// FilesFromMultipart adapts multipart form headers. Empty file inputs are skipped.
func FilesFromMultipart(headers []*multipart.FileHeader) []UploadFile {
	files := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		if fh == nil || fh.Filename == "" || fh.Size == 0 {
			continue
		}
		files = append(files, UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return files
}

// Progress tracks a batch of uploads. The aggregate is the mean of the per-file
// fractions over the number of files expected, so files not yet started count as 0.
type Progress struct {
	mu        sync.Mutex
	fractions []float64
}

func NewProgress(expected int) *Progress {
	return &Progress{fractions: make([]float64, expected)}
}

func (p *Progress) Set(index int, fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.fractions) {
		p.fractions[index] = fraction
	}
}

func (p *Progress) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.fractions) == 0 {
		return 1
	}
	var sum float64
	for _, f := range p.fractions {
		sum += f
	}
	return sum / float64(len(p.fractions))
}

type progressReader struct {
	r      io.Reader
	read   int64
	total  int64
	report func(float64)
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	pr.read += int64(n)
	if pr.total > 0 {
		pr.report(float64(pr.read) / float64(pr.total))
	}
	return n, err
}

// seekableProgressReader keeps the Seek of the wrapped reader visible, S3 needs it to sign
// payloads sent over plain HTTP.
type seekableProgressReader struct {
	*progressReader
	seeker io.Seeker
}

func (s seekableProgressReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.seeker.Seek(offset, whence)
	if err == nil {
		s.read = pos
	}
	return pos, err
}

func newProgressReader(r io.Reader, total int64, report func(float64)) io.Reader {
	pr := &progressReader{r: r, total: total, report: report}
	if seeker, ok := r.(io.Seeker); ok {
		return seekableProgressReader{progressReader: pr, seeker: seeker}
	}
	return pr
}

type MediaUploader struct {
	store  storage.Store
	prefix string
	logger zerolog.Logger
}

func NewMediaUploader(store storage.Store, prefix string) *MediaUploader {
	return &MediaUploader{
		store:  store,
		prefix: prefix,
		logger: log.With().Str("service", "mediaUploader").Logger(),
	}
}

// UploadAll sends files one at a time, in order. On failure it returns the files stored so
// far together with the error; those blobs are left in place.
func (u *MediaUploader) UploadAll(ctx context.Context, files []UploadFile, onProgress func(float64)) ([]UploadedFile, error) {
	progress := NewProgress(len(files))
	report := func(i int, fraction float64) {
		progress.Set(i, fraction)
		if onProgress != nil {
			onProgress(progress.Value())
		}
	}

	uploaded := make([]UploadedFile, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return uploaded, err
		}

		stored, err := u.upload(ctx, f, func(fraction float64) { report(i, fraction) })
		if err != nil {
			u.logger.Error().Err(err).Str("file", f.Name).Int("uploaded", len(uploaded)).Msg("upload batch stopped")
			return uploaded, err
		}
		report(i, 1)
		uploaded = append(uploaded, stored)

		u.logger.Debug().
			Str("file", f.Name).
			Float64("progress", progress.Value()).
			Msg("file uploaded")
	}

	return uploaded, nil
}

func (u *MediaUploader) upload(ctx context.Context, f UploadFile, report func(float64)) (UploadedFile, error) {
	rc, err := f.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(path.Ext(f.Name)); byExt != "" {
			contentType = byExt
		} else {
			contentType = "application/octet-stream"
		}
	}

	key := storage.NewKey(u.prefix, f.Name)
	url, err := u.store.Upload(ctx, key, contentType, newProgressReader(rc, f.Size, report), f.Size)
	if err != nil {
		return UploadedFile{}, err
	}

	return UploadedFile{Name: f.Name, URL: url, Size: f.Size}, nil
}
