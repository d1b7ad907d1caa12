package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SupabaseStorage uploads files into one storage bucket and resolves their
// public URLs.
type SupabaseStorage struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
	log        *logrus.Entry
}

func NewSupabaseStorage(baseURL, serviceKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     &http.Client{Timeout: 30 * time.Second},
		log:        logrus.WithField("component", "supabase-storage"),
	}
}

// Upload stores content at the given object path and returns its public URL.
// Existing objects at the same path are overwritten.
func (s *SupabaseStorage) Upload(ctx context.Context, path string, content []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("storage upload %s returned %d: %s", path, resp.StatusCode, raw)
	}
	return s.PublicURL(path), nil
}

// PublicURL resolves the public URL for an object path in the bucket.
func (s *SupabaseStorage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// Delete removes the object behind a public URL. Callers treat failures as
// best effort; the error is returned so they can log it.
func (s *SupabaseStorage) Delete(ctx context.Context, publicURL string) error {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	path := strings.TrimPrefix(publicURL, prefix)
	if path == publicURL {
		return fmt.Errorf("url %q is not in bucket %s", publicURL, s.bucket)
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.WithFields(logrus.Fields{"status": resp.StatusCode, "path": path}).Warn("storage delete failed")
		return fmt.Errorf("storage delete %s returned %d", path, resp.StatusCode)
	}
	return nil
}
