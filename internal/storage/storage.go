// Package storage uploads and deletes property files through the signed-URL
// API. The API issues a short-lived upload URL; the file bytes are then PUT
// directly to object storage.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxFileSize is the upload cap when none is configured (20 MiB)
const DefaultMaxFileSize int64 = 20 << 20

// KeyPrefix is the required prefix of every deletable object key
const KeyPrefix = "property-"

// AllowedTypes are the accepted upload MIME types
var AllowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
}

var (
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidKey      = errors.New("object key must start with " + KeyPrefix)
	ErrMissingTarget   = errors.New("file key or file url is required")
)

// Config points the client at the signed-URL API
type Config struct {
	BaseURL     string
	MaxFileSize int64
	Concurrency int
	Timeout     time.Duration
}

// Client calls the signed-URL API
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a storage client with defaults applied
func NewClient(cfg Config) *Client {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// File is one upload
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type uploadURLRequest struct {
	PropertyID  uuid.UUID `json:"propertyId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
}

// SignedUpload is the API's answer to an upload request
type SignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
}

// Uploaded describes a stored file
type Uploaded struct {
	Name    string `json:"name"`
	FileURL string `json:"file_url"`
	FileKey string `json:"file_key"`
}

// Validate checks a file against the allow-list and the size cap
func (c *Client) Validate(f File) error {
	if !AllowedTypes[normalizeType(f.ContentType)] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, f.ContentType)
	}
	if f.Size <= 0 {
		return ErrEmptyFile
	}
	if f.Size > c.cfg.MaxFileSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrFileTooLarge, f.Size, c.cfg.MaxFileSize)
	}
	return nil
}

// RequestUpload asks the API for a signed upload URL
func (c *Client) RequestUpload(ctx context.Context, propertyID uuid.UUID, f File) (*SignedUpload, error) {
	if err := c.Validate(f); err != nil {
		return nil, err
	}
	var signed SignedUpload
	err := c.postJSON(ctx, "/storage/r2-upload-url", uploadURLRequest{
		PropertyID:  propertyID,
		FileName:    path.Base(f.Name),
		ContentType: normalizeType(f.ContentType),
		FileSize:    f.Size,
	}, &signed)
	if err != nil {
		return nil, fmt.Errorf("failed to get upload url: %w", err)
	}
	if signed.UploadURL == "" {
		return nil, errors.New("signed-url api returned no upload url")
	}
	return &signed, nil
}

// Upload stores one file: signed URL first, then a direct PUT
func (c *Client) Upload(ctx context.Context, propertyID uuid.UUID, f File) (*Uploaded, error) {
	signed, err := c.RequestUpload(ctx, propertyID, f)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signed.UploadURL, f.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	req.ContentLength = f.Size
	req.Header.Set("Content-Type", normalizeType(f.ContentType))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", f.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to upload %s: status %d", f.Name, resp.StatusCode)
	}
	return &Uploaded{Name: f.Name, FileURL: signed.FileURL, FileKey: signed.FileKey}, nil
}

// UploadAll uploads files concurrently, at most Concurrency at a time.
// The first failure cancels the remaining uploads.
func (c *Client) UploadAll(ctx context.Context, propertyID uuid.UUID, files []File) ([]*Uploaded, error) {
	for _, f := range files {
		if err := c.Validate(f); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
	}

	out := make([]*Uploaded, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			up, err := c.Upload(ctx, propertyID, f)
			if err != nil {
				return err
			}
			out[i] = up
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type deleteRequest struct {
	FileKey string `json:"fileKey"`
}

// Delete removes an object by key or by its public URL
func (c *Client) Delete(ctx context.Context, keyOrURL string) error {
	key, err := ObjectKey(keyOrURL)
	if err != nil {
		return err
	}
	var resp struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.postJSON(ctx, "/storage/r2-delete", deleteRequest{FileKey: key}, &resp); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if !resp.Deleted {
		return fmt.Errorf("failed to delete %s: not confirmed", key)
	}
	return nil
}

// ObjectKey extracts the object key from a key or a public file URL and
// checks it carries the property prefix
func ObjectKey(keyOrURL string) (string, error) {
	s := strings.TrimSpace(keyOrURL)
	if s == "" {
		return "", ErrMissingTarget
	}
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		s = strings.TrimPrefix(u.Path, "/")
	}
	if !strings.HasPrefix(s, KeyPrefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return s, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func normalizeType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
