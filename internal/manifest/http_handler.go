package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// Handler exposes manifest import as an HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a POST endpoint.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}

	importID := uuid.New()
	log.Printf("[IMPORT] %s received %s (%d bytes)", importID, header.Filename, len(data))

	report, err := h.service.Import(r.Context(), header.Filename, bytes.NewReader(data))
	if err != nil {
		status := http.StatusBadRequest
		var sizeErr *SizeLimitError
		if errors.As(err, &sizeErr) {
			status = http.StatusRequestEntityTooLarge
		}
		log.Printf("[IMPORT] %s aborted: %v", importID, err)
		http.Error(w, err.Error(), status)
		return
	}

	log.Printf("[IMPORT] %s done: %d rows, %d accepted, %d rejected", importID, report.TotalRows, report.Accepted, report.Rejected)
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Printf("[IMPORT] failed to encode response: %v", err)
	}
}
