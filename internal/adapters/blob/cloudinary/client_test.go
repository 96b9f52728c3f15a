package cloudinary

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotPath, gotPreset, gotFile string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")

		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			b, _ := io.ReadAll(f)
			gotFile = string(b)
			f.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.test/image/upload/v1/dog.jpg"}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{
		CloudName:    "godfather-kennel",
		UploadPreset: "GodFather-Kennel",
		BaseURL:      srv.URL,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	url, err := c.Upload(context.Background(), strings.NewReader("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if url != "https://res.cloudinary.test/image/upload/v1/dog.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}
	if gotPath != "/v1_1/godfather-kennel/image/upload" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotPreset != "GodFather-Kennel" {
		t.Fatalf("unexpected preset: %q", gotPreset)
	}
	if gotFile != "jpeg-bytes" {
		t.Fatalf("unexpected file content: %q", gotFile)
	}
}

func TestUpload_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid upload preset"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewClient(Config{CloudName: "x", UploadPreset: "y", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.Upload(context.Background(), strings.NewReader("b"), "image/jpeg"); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestUpload_MissingSecureURLFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{CloudName: "x", UploadPreset: "y", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = c.Upload(context.Background(), strings.NewReader("b"), "image/jpeg")
	if !errors.Is(err, ErrNoSecureURL) {
		t.Fatalf("expected ErrNoSecureURL, got %v", err)
	}
}

func TestNewClient_RequiresConfig(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewClient(Config{CloudName: "x"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
