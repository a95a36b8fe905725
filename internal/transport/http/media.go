package http

import (
	"errors"
	"net/http"

	"github.com/cimillas/aplay-admin/internal/media"
)

// Image uploads are capped well above any realistic cover or logo.
const maxUploadBytes = 10 << 20

// HandleMedia serves POST (multipart upload) and DELETE on /admin/media.
// Uploads carry a "folder" form field and a "file" part; the response is
// the public URL to store on the owning record. Deletes name that URL
// in the "url" query parameter.
func HandleMedia(store media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid multipart body")
				return
			}
			folder := r.FormValue("folder")
			if !media.KnownFolder(folder) {
				writeError(w, http.StatusBadRequest, codeUnknownMediaFolder, media.ErrUnknownFolder.Error())
				return
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "missing file part")
				return
			}
			defer file.Close()

			url, err := store.Save(r.Context(), folder, header.Header.Get("Content-Type"), file)
			if err != nil {
				if errors.Is(err, media.ErrUnknownFolder) {
					writeError(w, http.StatusBadRequest, codeUnknownMediaFolder, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusCreated, mediaResponse{URL: url})
		case http.MethodDelete:
			url := r.URL.Query().Get("url")
			if url == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "missing url parameter")
				return
			}
			if err := store.Delete(r.Context(), url); err != nil {
				switch {
				case errors.Is(err, media.ErrNotFound):
					writeError(w, http.StatusNotFound, codeNotFound, err.Error())
				case errors.Is(err, media.ErrForeignURL):
					writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type mediaResponse struct {
	URL string `json:"url"`
}
