package usecase

import (
	"context"

	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

// Renderer is the rendering engine: HTML in, PDF bytes out.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ProfileStore reads and writes the profiles table of the hosted data store.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	Create(ctx context.Context, p *model.Profile) error
	Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error)
}

// HistoryRepo is the append-only cv_documents log.
type HistoryRepo interface {
	Insert(ctx context.Context, d *domain.CVDocument) error
	ListByUser(ctx context.Context, userID string) ([]domain.CVDocument, error)
}

// BlobStore is the binary object store. Upload overwrites any object at path.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

// CVLinker points a profile at its latest uploaded CV.
type CVLinker interface {
	UpdateCVLink(ctx context.Context, userID, link string) (*model.Profile, error)
}

// Saver hands a finished file to the host for saving.
type Saver interface {
	Save(ctx context.Context, fileName string, data []byte) error
}
