// Package memstore keeps profiles, CV history and PDF blobs in memory. It
// backs the CLI and tests in place of the hosted platform.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

type Profiles struct {
	mu   sync.Mutex
	rows map[string]*model.Profile
	now  func() time.Time
}

func NewProfiles() *Profiles {
	return &Profiles{rows: map[string]*model.Profile{}, now: time.Now}
}

func (s *Profiles) Get(_ context.Context, id string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (s *Profiles) Create(_ context.Context, p *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[p.ID]; ok {
		return fmt.Errorf("profile %s already exists", p.ID)
	}
	s.rows[p.ID] = p.Clone()
	return nil
}

func (s *Profiles) Update(_ context.Context, id string, patch model.ProfilePatch) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.Apply(patch, s.now().UTC())
	return p.Clone(), nil
}

type History struct {
	mu   sync.Mutex
	rows []domain.CVDocument
}

func NewHistory() *History { return &History{} }

func (h *History) Insert(_ context.Context, d *domain.CVDocument) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows = append(h.rows, *d)
	return nil
}

// ListByUser returns newest first; equal timestamps keep the later insert first.
func (h *History) ListByUser(_ context.Context, userID string) ([]domain.CVDocument, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := []domain.CVDocument{}
	for i := len(h.rows) - 1; i >= 0; i-- {
		if h.rows[i].UserID == userID {
			out = append(out, h.rows[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type Blobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	baseURL string
}

func NewBlobs(baseURL string) *Blobs {
	return &Blobs{objects: map[string][]byte{}, types: map[string]string{}, baseURL: strings.TrimRight(baseURL, "/")}
}

func (b *Blobs) Upload(_ context.Context, path string, data []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[path] = append([]byte(nil), data...)
	b.types[path] = contentType
	return nil
}

func (b *Blobs) PublicURL(path string) string {
	return b.baseURL + "/" + path
}

// Object returns a stored object and its content type.
func (b *Blobs) Object(path string) ([]byte, string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[path]
	return data, b.types[path], ok
}

func (b *Blobs) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}
