package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore keeps uploaded objects on disk under root. The server exposes
// root as static files, so PublicURL points back at it.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, publicBaseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Upload(ctx context.Context, path string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrap(err, "create object dir")
	}
	return errors.Wrap(os.WriteFile(full, data, 0o644), "write object")
}

func (s *LocalStore) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (s *LocalStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == string(filepath.Separator) {
		return "", errors.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}

// FileSaver is the local-save sink used for downloads outside the browser.
type FileSaver struct {
	Dir string
}

func (f FileSaver) Save(ctx context.Context, fileName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Dir != "" {
		if err := os.MkdirAll(f.Dir, 0o755); err != nil {
			return errors.Wrap(err, "create output dir")
		}
	}
	return errors.Wrap(os.WriteFile(filepath.Join(f.Dir, filepath.Base(fileName)), data, 0o644), "write file")
}
