package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseUpload(t *testing.T) {
	var (
		gotPath, gotAuth, gotKey, gotUpsert, gotType string
		gotBody                                      []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotUpsert = r.Header.Get("x-upsert")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"cvs/u1/1_CV.pdf"}`))
	}))
	defer srv.Close()

	s := NewSupabaseStore(srv.URL+"/", "service-key", "cvs")
	err := s.Upload(context.Background(), "u1/1_CV.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/cvs/u1/1_CV.pdf", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "%PDF-1.4", string(gotBody))

	assert.Equal(t, srv.URL+"/storage/v1/object/public/cvs/u1/1_CV.pdf", s.PublicURL("u1/1_CV.pdf"))
}

func TestSupabaseUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"new row violates row-level security policy"}`))
	}))
	defer srv.Close()

	err := NewSupabaseStore(srv.URL, "k", "cvs").Upload(context.Background(), "u1/1_CV.pdf", []byte("%PDF"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "row-level security")
}

func TestSupabaseUploadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSupabaseStore("http://127.0.0.1:1", "k", "cvs").Upload(ctx, "a.pdf", nil, "application/pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "http://localhost:3000/files/")
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "u1/1_CV.pdf", []byte("first"), "application/pdf"))
	require.NoError(t, s.Upload(ctx, "u1/1_CV.pdf", []byte("second"), "application/pdf"))

	b, err := os.ReadFile(filepath.Join(dir, "u1", "1_CV.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
	assert.Equal(t, "http://localhost:3000/files/u1/1_CV.pdf", s.PublicURL("u1/1_CV.pdf"))
	assert.Equal(t, dir, s.Root())
}

func TestLocalStoreStaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(filepath.Join(dir, "root"), "http://x")

	require.NoError(t, s.Upload(context.Background(), "../../escape.pdf", []byte("x"), ""))
	_, err := os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "root", "escape.pdf"))
	assert.NoError(t, err)

	assert.Error(t, s.Upload(context.Background(), "/", []byte("x"), ""))
}

func TestFileSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, FileSaver{Dir: dir}.Save(context.Background(), "Jane_Doe_CV.pdf", []byte("%PDF")))

	b, err := os.ReadFile(filepath.Join(dir, "Jane_Doe_CV.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
}
