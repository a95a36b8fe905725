package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cimillas/aplay-admin/internal/media"
)

type stubMediaStore struct {
	url        string
	err        error
	lastFolder string
	lastURL    string
}

func (s *stubMediaStore) Save(_ context.Context, folder, _ string, _ io.Reader) (string, error) {
	s.lastFolder = folder
	return s.url, s.err
}

func (s *stubMediaStore) Delete(_ context.Context, url string) error {
	s.lastURL = url
	return s.err
}

func uploadRequest(t *testing.T, folder string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			t.Fatalf("write folder field: %v", err)
		}
	}
	part, err := mw.CreateFormFile("file", "cover.jpg")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("jpeg bytes")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleMedia(t *testing.T) {
	t.Parallel()

	t.Run("upload returns the public url", func(t *testing.T) {
		store := &stubMediaStore{url: "http://localhost:8080/media/covers/abc.jpg"}
		rec := httptest.NewRecorder()
		HandleMedia(store).ServeHTTP(rec, uploadRequest(t, "covers"))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if store.lastFolder != "covers" {
			t.Fatalf("expected folder forwarded, got %q", store.lastFolder)
		}
		if !strings.Contains(rec.Body.String(), `"url":"http://localhost:8080/media/covers/abc.jpg"`) {
			t.Fatalf("expected url in response, got %s", rec.Body.String())
		}
	})

	t.Run("unknown folder is rejected before saving", func(t *testing.T) {
		store := &stubMediaStore{}
		rec := httptest.NewRecorder()
		HandleMedia(store).ServeHTTP(rec, uploadRequest(t, "selfies"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"unknown_media_folder"`) {
			t.Fatalf("expected unknown_media_folder code, got %s", rec.Body.String())
		}
		if store.lastFolder != "" {
			t.Fatalf("store should not be called for unknown folder")
		}
	})

	t.Run("delete takes the url query parameter", func(t *testing.T) {
		store := &stubMediaStore{}
		target := "/admin/media?url=" + "http%3A%2F%2Flocalhost%3A8080%2Fmedia%2Fcovers%2Fabc.jpg"
		req := httptest.NewRequest(http.MethodDelete, target, nil)
		rec := httptest.NewRecorder()
		HandleMedia(store).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if store.lastURL != "http://localhost:8080/media/covers/abc.jpg" {
			t.Fatalf("expected decoded url forwarded, got %q", store.lastURL)
		}
	})

	t.Run("delete without url is a bad request", func(t *testing.T) {
		store := &stubMediaStore{}
		req := httptest.NewRequest(http.MethodDelete, "/admin/media", nil)
		rec := httptest.NewRecorder()
		HandleMedia(store).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if store.lastURL != "" {
			t.Fatalf("store should not be called without a url")
		}
	})

	t.Run("delete of unmanaged url maps store error", func(t *testing.T) {
		store := &stubMediaStore{err: media.ErrForeignURL}
		req := httptest.NewRequest(http.MethodDelete, "/admin/media?url=http://elsewhere.test/x.jpg", nil)
		rec := httptest.NewRecorder()
		HandleMedia(store).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
