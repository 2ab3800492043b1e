package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// allowedImageExts bounds the stored file extension to the image types the
// content sniffer can actually confirm; anything else is saved without an
// extension. SVG and AVIF are excluded because DetectContentType never
// reports them as image/*, so such uploads cannot pass the sniff check.
var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true,
}

// HandleUpload accepts a multipart image in the "image" field and stores it
// under the upload directory with a random name. The response carries the
// public URL the frontend writes back into book or tenant records.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.Upload.MaxBytes)
	if err := r.ParseMultipartForm(h.Config.Upload.MaxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	// Sniff the real content type; the client-declared one is not trusted.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Images only!")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	name, err := randomFilename(header.Filename)
	if err != nil {
		h.Log.Error("generate upload name", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	dst, err := os.OpenFile(filepath.Join(h.Config.Upload.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		h.Log.Error("open upload target", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.Log.Error("write upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Image uploaded successfully",
		"imageUrl": "/uploads/" + name,
	})
}

// randomFilename returns a random hex name carrying over the original
// extension when it is a recognized image extension. The client-supplied
// base name never reaches the filesystem.
func randomFilename(original string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random name: %w", err)
	}
	name := "image-" + hex.EncodeToString(b)
	if ext := strings.ToLower(filepath.Ext(original)); allowedImageExts[ext] {
		name += ext
	}
	return name, nil
}
