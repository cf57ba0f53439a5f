package usecase

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"applica-cv/internal/cv/document"
	"applica-cv/internal/cv/templates"
	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

const pdfContentType = "application/pdf"

var whitespace = regexp.MustCompile(`\s+`)

// CVService turns a profile snapshot into a PDF and delivers it either to
// the host (download) or to the object store (upload).
type CVService struct {
	renderer Renderer
	blobs    BlobStore
	history  HistoryRepo
	links    CVLinker
	now      func() time.Time
}

func NewCVService(r Renderer, blobs BlobStore, history HistoryRepo, links CVLinker) *CVService {
	return &CVService{renderer: r, blobs: blobs, history: history, links: links, now: time.Now}
}

// WithClock overrides the clock used for storage paths and record timestamps.
func (s *CVService) WithClock(now func() time.Time) *CVService {
	s.now = now
	return s
}

// Build maps the profile onto the selected template's document tree.
func (s *CVService) Build(p *model.Profile, templateID string) (*document.Document, error) {
	tpl, ok := templates.Lookup(templateID)
	if !ok {
		return nil, &domain.UnknownTemplateError{ID: templateID}
	}
	doc, err := tpl.Render(p.Clone())
	if err != nil {
		return nil, &domain.RenderError{Template: templateID, Err: err}
	}
	return doc, nil
}

// Generate renders the profile with the selected template and returns the PDF.
func (s *CVService) Generate(ctx context.Context, p *model.Profile, templateID string) ([]byte, error) {
	doc, err := s.Build(p, templateID)
	if err != nil {
		log.Error().Err(err).Str("template", templateID).Msg("error generating CV")
		return nil, err
	}

	html, err := document.HTML(doc)
	if err != nil {
		err = &domain.RenderError{Template: templateID, Err: errors.Wrap(err, "encode html")}
		log.Error().Err(err).Str("template", templateID).Msg("error generating CV")
		return nil, err
	}

	pdf, err := s.renderer.RenderHTMLToPDF(ctx, html)
	if err == nil && !bytes.HasPrefix(pdf, []byte("%PDF")) {
		err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
	}
	if err != nil {
		err = &domain.RenderError{Template: templateID, Err: err}
		log.Error().Err(err).Str("template", templateID).Msg("error generating CV")
		return nil, err
	}
	return pdf, nil
}

// Download generates the PDF and hands it to saver. An empty fileName is
// derived from the profile name.
func (s *CVService) Download(ctx context.Context, p *model.Profile, templateID, fileName string, saver Saver) error {
	pdf, err := s.Generate(ctx, p, templateID)
	if err != nil {
		return err
	}
	if fileName == "" {
		fileName = DownloadName(p)
	}
	if err := saver.Save(ctx, fileName, pdf); err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("error downloading CV")
		return errors.Wrap(err, "save CV")
	}
	return nil
}

// Upload generates the PDF, writes it to {userID}/{millis}_CV.pdf and
// returns the object's public URL. The profile's cv_link is then pointed at
// it on a best-effort basis.
func (s *CVService) Upload(ctx context.Context, userID string, p *model.Profile, templateID string) (string, error) {
	pdf, err := s.Generate(ctx, p, templateID)
	if err != nil {
		return "", err
	}

	path := UploadPath(userID, s.now())
	if err := s.blobs.Upload(ctx, path, pdf, pdfContentType); err != nil {
		err = &domain.StorageError{Path: path, Err: err}
		log.Error().Err(err).Str("user", userID).Str("template", templateID).Msg("error uploading CV")
		return "", err
	}
	url := s.blobs.PublicURL(path)

	if s.links != nil {
		if _, err := s.links.UpdateCVLink(ctx, userID, url); err != nil {
			log.Warn().Err(err).Str("user", userID).Msg("unable to update cv_link (non-fatal)")
		}
	}
	return url, nil
}

// RecordCV appends a history entry for an uploaded file.
func (s *CVService) RecordCV(ctx context.Context, userID, templateID, fileURL string) (*domain.CVDocument, error) {
	rec := &domain.CVDocument{
		ID:           uuid.New(),
		UserID:       userID,
		TemplateUsed: templateID,
		FileURL:      fileURL,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		err = &domain.PersistenceError{Op: "save CV record", Err: err}
		log.Error().Err(err).Str("user", userID).Str("template", templateID).Msg("error saving CV record")
		return nil, err
	}
	return rec, nil
}

// History lists the user's records, newest first.
func (s *CVService) History(ctx context.Context, userID string) ([]domain.CVDocument, error) {
	docs, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		err = &domain.PersistenceError{Op: "fetch CV history", Err: err}
		log.Error().Err(err).Str("user", userID).Msg("error fetching CV history")
		return nil, err
	}
	if docs == nil {
		docs = []domain.CVDocument{}
	}
	return docs, nil
}

// DownloadName is the profile name with whitespace runs replaced by
// underscores, suffixed _CV.pdf.
func DownloadName(p *model.Profile) string {
	name := ""
	if p != nil {
		name = whitespace.ReplaceAllString(model.Str(p.Name), "_")
		name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	}
	if name == "" {
		return "CV.pdf"
	}
	return name + "_CV.pdf"
}

// UploadPath is the object key for a user's upload at t.
func UploadPath(userID string, t time.Time) string {
	return fmt.Sprintf("%s/%d_CV.pdf", userID, t.UnixMilli())
}
