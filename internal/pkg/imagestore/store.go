// Package imagestore persists base64-encoded recipe images on local disk
// and exposes them under a public URL prefix.
package imagestore

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"foodgram/internal/pkg/apperr"
)

const (
	DefaultMaxBytes = 10 * 1024 * 1024
	DefaultMaxWidth = 1280
	// DefaultMaxPixels caps the decoded canvas; a small compressed file can
	// declare a huge one.
	DefaultMaxPixels = 40_000_000
	subdir           = "recipes"
)

var (
	ErrEmptyImage       = apperr.Validation("IMAGE_EMPTY", "image is empty")
	ErrInvalidEncoding  = apperr.Validation("IMAGE_INVALID_ENCODING", "image must be base64 encoded")
	ErrImageTooLarge    = apperr.Validation("IMAGE_TOO_LARGE", "image exceeds maximum allowed size")
	ErrUnsupportedImage = apperr.Validation("IMAGE_UNSUPPORTED", "image type is not allowed")
	ErrCorruptImage     = apperr.Validation("IMAGE_CORRUPT", "image could not be decoded")
)

// allowed content types and the encoder used to write them back
var formats = map[string]struct {
	format imaging.Format
	ext    string
}{
	"image/jpeg": {imaging.JPEG, ".jpg"},
	"image/png":  {imaging.PNG, ".png"},
	"image/gif":  {imaging.GIF, ".gif"},
}

type Store struct {
	baseDir   string
	baseURL   string
	maxWidth  int
	maxBytes  int
	maxPixels int
	now       func() time.Time
}

func New(baseDir, baseURL string, maxWidth, maxBytes int) *Store {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		baseDir:   baseDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxWidth:  maxWidth,
		maxBytes:  maxBytes,
		maxPixels: DefaultMaxPixels,
		now:       time.Now,
	}
}

// WithMaxPixels sets the largest width*height accepted for decoding.
// Non-positive values keep the current limit.
func (s *Store) WithMaxPixels(n int) *Store {
	if n > 0 {
		s.maxPixels = n
	}
	return s
}

// Dir is the directory that must be served under the URL prefix.
func (s *Store) Dir() string {
	return s.baseDir
}

// SaveBase64 accepts either a data URI (data:image/png;base64,...) or a bare
// base64 payload and returns the public URL of the stored file.
func (s *Store) SaveBase64(payload string) (string, error) {
	data, err := decodePayload(payload)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if len(data) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	mimeType := strings.Split(http.DetectContentType(data), ";")[0]
	f, ok := formats[mimeType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrCorruptImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrCorruptImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(s.maxPixels) {
		return "", ErrImageTooLarge.WithDetails(map[string]any{
			"width":      cfg.Width,
			"height":     cfg.Height,
			"max_pixels": s.maxPixels,
		})
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrCorruptImage
	}
	if img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}

	now := s.now()
	relDir := filepath.Join(subdir, fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%02d", now.Month()))
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	relPath := filepath.Join(relDir, uuid.NewString()+f.ext)
	absPath := filepath.Join(s.baseDir, relPath)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if err := imaging.Encode(dst, img, f.format); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return "", fmt.Errorf("encode image: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("close image file: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(relPath), nil
}

// Delete removes the file behind a URL returned by SaveBase64.
// URLs outside the store are ignored.
func (s *Store) Delete(url string) error {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	rel := filepath.FromSlash(strings.TrimPrefix(url, prefix))
	if rel == "" || strings.Contains(rel, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.baseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the URLs of every stored image.
func (s *Store) List() ([]string, error) {
	root := filepath.Join(s.baseDir, subdir)
	var urls []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		urls = append(urls, s.baseURL+"/"+filepath.ToSlash(rel))
		return nil
	})
	return urls, err
}

func decodePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrEmptyImage
	}
	if strings.HasPrefix(payload, "data:") {
		comma := strings.Index(payload, ",")
		if comma < 0 || !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, ErrInvalidEncoding
		}
		payload = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, ErrInvalidEncoding
		}
	}
	return data, nil
}
