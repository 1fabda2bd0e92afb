package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// allowedLegalTypes is the allowlist of legal document type names.
// Only these values may be requested via GET /api/legal/{type}.
var allowedLegalTypes = map[string]bool{
	"terms":   true,
	"privacy": true,
}

// LegalConfig holds configuration for the LegalHandler.
type LegalConfig struct {
	// DocsDir is the directory from which legal Markdown files are read.
	// Corresponds to the LEGAL_DOCS_DIR environment variable.
	DocsDir string
	// Fallback serves documents missing from DocsDir. Optional.
	Fallback fs.FS
}

// LegalHandler handles GET /api/legal/{type}.
type LegalHandler struct {
	cfg LegalConfig
}

// NewLegalHandler creates a LegalHandler with the given configuration.
func NewLegalHandler(cfg LegalConfig) *LegalHandler {
	return &LegalHandler{cfg: cfg}
}

// Legal handles GET /api/legal/{type}.
// Returns the Markdown content of the requested legal document.
// Responds 404 when the document does not exist.
// Rejects path traversal attempts with 400.
func (h *LegalHandler) Legal(w http.ResponseWriter, r *http.Request) {
	docType := r.PathValue("type")

	if strings.Contains(docType, "/") || strings.Contains(docType, "\\") || strings.Contains(docType, "..") {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !allowedLegalTypes[docType] {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	content, err := h.read(docType + ".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// read looks in DocsDir first, then in Fallback.
func (h *LegalHandler) read(name string) ([]byte, error) {
	err := fs.ErrNotExist
	if h.cfg.DocsDir != "" {
		var content []byte
		content, err = h.readDir(name)
		if err == nil {
			return content, nil
		}
	}
	if errors.Is(err, fs.ErrNotExist) && h.cfg.Fallback != nil {
		return fs.ReadFile(h.cfg.Fallback, name)
	}
	return nil, err
}

func (h *LegalHandler) readDir(name string) ([]byte, error) {
	absDir, err := filepath.Abs(h.cfg.DocsDir)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(absDir, name)

	// The resolved path must stay within DocsDir.
	if !strings.HasPrefix(filePath, absDir+string(filepath.Separator)) {
		return nil, fs.ErrNotExist
	}

	return os.ReadFile(filePath)
}
