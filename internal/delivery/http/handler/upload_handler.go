package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"terradash/internal/application/analytics"
	"terradash/internal/application/ingest"
	"terradash/internal/domain/dataset"
)

var validate = validator.New()

// uploadForm carries the multipart fields that accompany the file.
type uploadForm struct {
	Type  string `validate:"required,oneof=orders ads"`
	Month string `validate:"required"`
	Year  string `validate:"required"`
}

// Period is the reporting period the upload belongs to.
type Period struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

// UploadedFile is the acknowledgment payload for a successful upload.
type UploadedFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Period   Period `json:"period"`
	Status   string `json:"status"`
	Rows     int    `json:"rows"`
}

type UploadHandler struct {
	ingest      ingest.Service
	analytics   analytics.Service
	maxFileSize int64
	uploadDir   string
	log         *logrus.Logger
}

func NewUploadHandler(ingestSvc ingest.Service, analyticsSvc analytics.Service, maxFileSize int64, uploadDir string, log *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		ingest:      ingestSvc,
		analytics:   analyticsSvc,
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
		log:         log,
	}
}

// Upload handles POST /api/upload. The request is multipart form data
// with fields file, type (orders|ads), month and year. Either the whole
// file replaces the stored collection or the request fails and the
// previous collection stays untouched.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+64<<10)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		SendError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	form := uploadForm{
		Type:  r.FormValue("type"),
		Month: r.FormValue("month"),
		Year:  r.FormValue("year"),
	}
	if err := validate.Struct(form); err != nil {
		SendError(w, "Missing or invalid parameters (type, month, year)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		SendError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := checkCSV(header.Filename, header.Header.Get("Content-Type")); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if header.Size > h.maxFileSize {
		SendError(w, fmt.Sprintf("File exceeds the %d MB limit", h.maxFileSize>>20), http.StatusBadRequest)
		return
	}

	// Stage the upload on disk, mirroring how validation failures leave a
	// temp file behind. It is removed on every path.
	tmp, err := os.CreateTemp(h.uploadDir, "upload-*.csv")
	if err != nil {
		h.log.WithError(err).Error("failed to create temp upload file")
		SendError(w, "Failed to process file", http.StatusInternalServerError)
		return
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		SendError(w, "Failed to process file", http.StatusInternalServerError)
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		SendError(w, "Failed to process file", http.StatusInternalServerError)
		return
	}

	kind := dataset.Kind(form.Type)
	rows, err := h.ingest.Ingest(tmp, kind)
	if err != nil {
		h.handleIngestError(w, err, header.Filename)
		return
	}

	// The dashboard is derived from the stored collections; drop the
	// memoized payload now that they changed.
	h.analytics.Invalidate()

	SendSuccess(w, "File processed successfully", UploadedFile{
		ID:       uuid.New().String(),
		Filename: header.Filename,
		Type:     form.Type,
		Date:     time.Now().UTC().Format(time.RFC3339),
		Period:   Period{Month: form.Month, Year: form.Year},
		Status:   "processed",
		Rows:     rows,
	})
}

func (h *UploadHandler) handleIngestError(w http.ResponseWriter, err error, filename string) {
	var schemaErr *dataset.SchemaValidationError
	switch {
	case errors.As(err, &schemaErr):
		h.log.WithFields(logrus.Fields{"file": filename, "kind": schemaErr.Kind}).Warn("upload rejected: schema validation failed")
		SendError(w, schemaErr.Error(), http.StatusBadRequest)
	case errors.Is(err, dataset.ErrInvalidKind):
		SendError(w, "Invalid file type", http.StatusBadRequest)
	default:
		h.log.WithError(err).WithField("file", filename).Error("upload failed")
		SendError(w, "Failed to process file", http.StatusInternalServerError)
	}
}

// checkCSV rejects non-CSV uploads before any parsing happens.
func checkCSV(filename, contentType string) error {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil
	}
	if mediaType, _, _ := strings.Cut(contentType, ";"); strings.TrimSpace(mediaType) == "text/csv" {
		return nil
	}
	return dataset.ErrNotCSV
}
