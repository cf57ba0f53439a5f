package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// SupabaseStore uploads objects through the Supabase Storage REST API into a
// public bucket.
type SupabaseStore struct {
	baseURL string
	key     string
	bucket  string
	timeout time.Duration
}

func NewSupabaseStore(baseURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     serviceKey,
		bucket:  bucket,
		timeout: 30 * time.Second,
	}
}

// Upload writes data at path, replacing any existing object.
func (s *SupabaseStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, strings.TrimLeft(path, "/"))
	agent := fiber.Post(url).
		Set(fiber.HeaderAuthorization, "Bearer "+s.key).
		Set("apikey", s.key).
		Set("x-upsert", "true").
		ContentType(contentType).
		Body(data).
		Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return errors.Wrap(err, "build upload request")
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Wrap(errs[0], "upload request")
	}
	if code < 200 || code >= 300 {
		return errors.Errorf("upload %s: status %d: %s", path, code, strings.TrimSpace(string(body)))
	}
	return nil
}

func (s *SupabaseStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, strings.TrimLeft(path, "/"))
}
