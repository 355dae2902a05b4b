package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

const testBase = "https://cdn.example.com/"

type fakeStore struct {
	objects    map[string]string
	deleted    []string
	failUpload map[string]bool
	failDelete map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}, failUpload: map[string]bool{}, failDelete: map[string]bool{}}
}

func (s *fakeStore) Upload(_ context.Context, key, _ string, r io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.failUpload[string(b)] {
		return "", errors.New("upload rejected")
	}
	url := testBase + key
	s.objects[url] = string(b)
	return url, nil
}

func (s *fakeStore) Delete(_ context.Context, url string) error {
	if s.failDelete[url] {
		return errors.New("delete rejected")
	}
	delete(s.objects, url)
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *fakeStore) Owns(url string) bool {
	return strings.HasPrefix(url, testBase)
}

func fileWithContent(name, content string) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}

type fakeProjects struct {
	rows      map[uuid.UUID]*models.Project
	marked    map[uuid.UUID]bool
	markCalls int
}

func newFakeProjects(projects ...*models.Project) *fakeProjects {
	f := &fakeProjects{rows: map[uuid.UUID]*models.Project{}, marked: map[uuid.UUID]bool{}}
	for _, p := range projects {
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakeProjects) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	if f.marked[id] {
		return nil, nil
	}
	return f.rows[id], nil
}

func (f *fakeProjects) FindByIDUnscoped(_ context.Context, id uuid.UUID) (*models.Project, error) {
	return f.rows[id], nil
}

func (f *fakeProjects) MarkDeleted(_ context.Context, id uuid.UUID) error {
	if p, ok := f.rows[id]; ok {
		f.marked[id] = true
		p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	f.markCalls++
	return nil
}

func (f *fakeProjects) Purge(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	delete(f.marked, id)
	return nil
}

func (f *fakeProjects) FindMarked(context.Context) ([]*models.Project, error) {
	var out []*models.Project
	for id := range f.marked {
		out = append(out, f.rows[id])
	}
	return out, nil
}

type fakeEmail struct {
	sent []Email
	err  error
}

func (f *fakeEmail) SendEmail(_ context.Context, email Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type fakeSMS struct {
	to   []string
	body []string
	err  error
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}
