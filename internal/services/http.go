package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lllllllleong/pdfinsight/internal/gcp"
	"github.com/Lllllllleong/pdfinsight/internal/models"
	"github.com/Lllllllleong/pdfinsight/internal/pdftext"
)

const maxUploadMemory = 32 << 20

// ServeHTTP accepts either a multipart upload or a JSON request naming a GCS
// object, and writes the analysis as JSON.
func (f *AnalyzerFunction) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		res *models.AnalyzeResponse
		err error
	)
	switch mediaType {
	case "multipart/form-data":
		res, err = f.handleUpload(r)
	case "application/json", "":
		var req models.AnalyzeRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			slog.Warn("Could not decode request body", "error", decodeErr)
			writeError(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		res, err = f.Process(r.Context(), &req)
	default:
		writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported content type %q", mediaType))
		return
	}

	if err != nil {
		// The specific error is already logged inside the service.
		status := statusFor(err)
		writeError(w, status, errorMessage(status, err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func (f *AnalyzerFunction) handleUpload(r *http.Request) (*models.AnalyzeResponse, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("%w: could not parse multipart form: %v", ErrBadRequest, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: form field \"file\" is required", ErrBadRequest)
	}
	defer file.Close()

	topN := 0
	if raw := strings.TrimSpace(r.FormValue("topN")); raw != "" {
		topN, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: topN must be an integer", ErrBadRequest)
		}
	}
	return f.ProcessUpload(r.Context(), header.Filename, file, r.FormValue("summaryType"), topN)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, pdftext.ErrNotPDF):
		return http.StatusBadRequest
	case errors.Is(err, gcp.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal failure details from callers.
func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "processing failed"
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Status: models.StatusError, Error: message})
}
