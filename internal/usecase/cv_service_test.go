package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applica-cv/internal/adapter/memstore"
	"applica-cv/internal/domain"
	"applica-cv/internal/model"
)

type fakeRenderer struct {
	out   []byte
	err   error
	calls int
	html  string
}

func (r *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	r.calls++
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	if r.out != nil {
		return r.out, nil
	}
	return []byte("%PDF-1.4 fake"), nil
}

type recordingLinker struct {
	users []string
	links []string
	err   error
}

func (l *recordingLinker) UpdateCVLink(_ context.Context, userID, link string) (*model.Profile, error) {
	l.users = append(l.users, userID)
	l.links = append(l.links, link)
	return nil, l.err
}

type failingBlobs struct{}

func (failingBlobs) Upload(context.Context, string, []byte, string) error {
	return errors.New("bucket unavailable")
}

func (failingBlobs) PublicURL(path string) string { return "https://example.invalid/" + path }

type failingHistory struct{}

func (failingHistory) Insert(context.Context, *domain.CVDocument) error {
	return errors.New("connection reset")
}

func (failingHistory) ListByUser(context.Context, string) ([]domain.CVDocument, error) {
	return nil, errors.New("connection reset")
}

type saved struct {
	name string
	data []byte
}

type recordingSaver struct {
	files []saved
	err   error
}

func (s *recordingSaver) Save(_ context.Context, name string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.files = append(s.files, saved{name, data})
	return nil
}

var clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *CVService
	renderer *fakeRenderer
	blobs    *memstore.Blobs
	history  *memstore.History
	profiles *memstore.Profiles
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		renderer: &fakeRenderer{},
		blobs:    memstore.NewBlobs("https://cdn.example.com/cvs"),
		history:  memstore.NewHistory(),
		profiles: memstore.NewProfiles(),
	}
	f.svc = NewCVService(f.renderer, f.blobs, f.history, NewProfileService(f.profiles)).WithClock(func() time.Time { return clock })
	require.NoError(t, f.profiles.Create(context.Background(), profile()))
	return f
}

func profile() *model.Profile {
	p := model.NewProfile("u1", "jane@example.com", clock)
	p.Name = model.StrPtr("Jane Doe")
	p.Experience = []model.Experience{{Company: "Acme", Position: "Engineer", StartDate: "2020-01", Current: true}}
	return p
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"modern", "classic", "minimal"} {
		pdf, err := f.svc.Generate(context.Background(), profile(), id)
		require.NoError(t, err, id)
		assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), id)
		assert.Contains(t, f.renderer.html, "Jane Doe")
	}
	assert.Equal(t, 3, f.renderer.calls)
}

func TestGenerateUnknownTemplate(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Generate(context.Background(), profile(), "bogus")

	var ute *domain.UnknownTemplateError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "bogus", ute.ID)
	assert.Zero(t, f.renderer.calls)
}

func TestGenerateRenderFailures(t *testing.T) {
	tests := []struct {
		name     string
		renderer *fakeRenderer
	}{
		{"engine error", &fakeRenderer{err: errors.New("chrome crashed")}},
		{"not a pdf", &fakeRenderer{out: []byte("<html>")}},
		{"empty output", &fakeRenderer{out: []byte{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCVService(tt.renderer, memstore.NewBlobs(""), memstore.NewHistory(), nil)
			_, err := svc.Generate(context.Background(), profile(), "classic")
			var re *domain.RenderError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, "classic", re.Template)
		})
	}
}

func TestGenerateDoesNotTouchStores(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Generate(context.Background(), profile(), "modern")
	require.NoError(t, err)
	assert.Zero(t, f.blobs.Len())

	docs, err := f.svc.History(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDownload(t *testing.T) {
	f := newFixture(t)
	saver := &recordingSaver{}

	require.NoError(t, f.svc.Download(context.Background(), profile(), "classic", "", saver))
	require.Len(t, saver.files, 1)
	assert.Equal(t, "Jane_Doe_CV.pdf", saver.files[0].name)
	assert.True(t, strings.HasPrefix(string(saver.files[0].data), "%PDF"))

	require.NoError(t, f.svc.Download(context.Background(), profile(), "minimal", "custom.pdf", saver))
	assert.Equal(t, "custom.pdf", saver.files[1].name)
}

func TestDownloadErrors(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Download(context.Background(), profile(), "nope", "", &recordingSaver{})
	var ute *domain.UnknownTemplateError
	assert.True(t, errors.As(err, &ute))

	err = f.svc.Download(context.Background(), profile(), "modern", "", &recordingSaver{err: errors.New("disk full")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		name *string
		want string
	}{
		{model.StrPtr("Jane Doe"), "Jane_Doe_CV.pdf"},
		{model.StrPtr("Jane   Q\tDoe"), "Jane_Q_Doe_CV.pdf"},
		{model.StrPtr("  Ali  "), "Ali_CV.pdf"},
		{model.StrPtr("a/b"), "a_b_CV.pdf"},
		{model.StrPtr(""), "CV.pdf"},
		{nil, "CV.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DownloadName(&model.Profile{Name: tt.name}))
	}
	assert.Equal(t, "CV.pdf", DownloadName(nil))
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	url, err := f.svc.Upload(ctx, "u1", profile(), "modern")
	require.NoError(t, err)

	path := "u1/1709294400000_CV.pdf"
	assert.Equal(t, path, UploadPath("u1", clock))
	assert.Equal(t, "https://cdn.example.com/cvs/"+path, url)

	data, contentType, ok := f.blobs.Object(path)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))

	p, err := f.profiles.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, url, model.Str(p.CVLink))
}

func TestUploadUpdatesCVLink(t *testing.T) {
	linker := &recordingLinker{}
	svc := NewCVService(&fakeRenderer{}, memstore.NewBlobs("https://cdn.example.com/cvs"), memstore.NewHistory(), linker).
		WithClock(func() time.Time { return clock })

	url, err := svc.Upload(context.Background(), "u1", profile(), "classic")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, linker.users)
	assert.Equal(t, []string{url}, linker.links)

	linker.err = domain.ErrProfileNotFound
	_, err = svc.Upload(context.Background(), "u2", profile(), "classic")
	require.NoError(t, err)
	assert.Len(t, linker.links, 2)
}

func TestUploadStorageFailureSkipsLink(t *testing.T) {
	linker := &recordingLinker{}
	svc := NewCVService(&fakeRenderer{}, failingBlobs{}, memstore.NewHistory(), linker)

	_, err := svc.Upload(context.Background(), "u1", profile(), "modern")
	require.Error(t, err)
	assert.Empty(t, linker.links)
}

func TestUploadOverwritesSamePath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, "u1", profile(), "modern")
	require.NoError(t, err)
	_, err = f.svc.Upload(ctx, "u1", profile(), "classic")
	require.NoError(t, err)
	assert.Equal(t, 1, f.blobs.Len())
}

func TestUploadStorageFailure(t *testing.T) {
	profiles := memstore.NewProfiles()
	require.NoError(t, profiles.Create(context.Background(), profile()))
	svc := NewCVService(&fakeRenderer{}, failingBlobs{}, memstore.NewHistory(), NewProfileService(profiles)).WithClock(func() time.Time { return clock })

	_, err := svc.Upload(context.Background(), "u1", profile(), "modern")
	var se *domain.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "u1/1709294400000_CV.pdf", se.Path)

	p, err := profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, p.CVLink)
}

func TestUploadSurvivesMissingProfile(t *testing.T) {
	f := newFixture(t)
	url, err := f.svc.Upload(context.Background(), "someone-else", profile(), "minimal")
	require.NoError(t, err)
	assert.Contains(t, url, "someone-else/")
}

func TestRecordAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.RecordCV(ctx, "u1", "classic", "https://cdn.example.com/cvs/u1/1_CV.pdf")
	require.NoError(t, err)
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, "classic", first.TemplateUsed)
	assert.Equal(t, clock, first.CreatedAt)

	f.svc.WithClock(func() time.Time { return clock.Add(time.Minute) })
	second, err := f.svc.RecordCV(ctx, "u1", "modern", "https://cdn.example.com/cvs/u1/2_CV.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = f.svc.RecordCV(ctx, "u2", "modern", "https://cdn.example.com/cvs/u2/3_CV.pdf")
	require.NoError(t, err)

	docs, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.FileURL, docs[0].FileURL)
	assert.Equal(t, first.FileURL, docs[1].FileURL)
}

func TestHistoryEmpty(t *testing.T) {
	f := newFixture(t)
	docs, err := f.svc.History(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestPersistenceFailures(t *testing.T) {
	svc := NewCVService(&fakeRenderer{}, memstore.NewBlobs(""), failingHistory{}, nil)

	_, err := svc.RecordCV(context.Background(), "u1", "modern", "https://x/y.pdf")
	var pe *domain.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "save CV record", pe.Op)

	_, err = svc.History(context.Background(), "u1")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "fetch CV history", pe.Op)
}
