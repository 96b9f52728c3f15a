package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"kennel-registry/internal/platform/httpclient"
)

const defaultBaseURL = "https://api.cloudinary.com"

var (
	ErrNotConfigured = errors.New("cloudinary client not configured")
	ErrNoSecureURL   = errors.New("cloudinary response missing secure_url")
)

type Config struct {
	CloudName    string
	UploadPreset string

	BaseURL string // override para tests; default api.cloudinary.com
	Timeout time.Duration
}

// Client sube imágenes vía el endpoint de unsigned upload de Cloudinary
// (upload_preset + file, sin API key).
type Client struct {
	http         *httpclient.Client
	cloudName    string
	uploadPreset string
}

func NewClient(cfg Config) (*Client, error) {
	cloud := strings.TrimSpace(cfg.CloudName)
	preset := strings.TrimSpace(cfg.UploadPreset)
	if cloud == "" || preset == "" {
		return nil, ErrNotConfigured
	}

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		cloudName:    cloud,
		uploadPreset: preset,
	}, nil
}

// NewFromEnv crea el cliente desde env:
// - CLOUDINARY_CLOUD_NAME (requerido)
// - CLOUDINARY_UPLOAD_PRESET (requerido)
// - CLOUDINARY_BASE_URL (opcional, para tests)
func NewFromEnv() (*Client, error) {
	return NewClient(Config{
		CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		BaseURL:      os.Getenv("CLOUDINARY_BASE_URL"),
	})
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sube la imagen y devuelve la secure_url resultante.
func (c *Client) Upload(ctx context.Context, r io.Reader, contentType string) (string, error) {
	path := fmt.Sprintf("/v1_1/%s/image/upload", c.cloudName)

	var out uploadResponse
	err := c.http.DoMultipart(ctx, path,
		map[string]string{"upload_preset": c.uploadPreset},
		&httpclient.FilePart{
			FieldName:   "file",
			FileName:    "photo",
			ContentType: contentType,
			Reader:      r,
		},
		&out,
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	if strings.TrimSpace(out.SecureURL) == "" {
		return "", ErrNoSecureURL
	}
	return out.SecureURL, nil
}
