package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/okian/dss/pkg/logger"
)

const uploadField = "file"

// UploadHandler serves comparisons built from user files.
type UploadHandler struct {
	deps     Dependencies
	maxBytes int64
	log      logger.Logger
}

// NewUploadHandler creates a new upload handler accepting at most maxBytes.
func NewUploadHandler(deps Dependencies, maxBytes int64, log logger.Logger) *UploadHandler {
	return &UploadHandler{deps: deps, maxBytes: maxBytes, log: log}
}

// HandlePostUpload handles POST /api/upload?year=YYYY with a multipart "file" field.
func (h *UploadHandler) HandlePostUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_upload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(r.Context(), h.log, w, WrapKind(op, bodyErrorKind(err), err))
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, errors.New("missing file field \"file\"")))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(r.Context(), h.log, w, WrapKind(op, bodyErrorKind(err), err))
		return
	}

	year := r.URL.Query().Get("year")
	if year == "" {
		year = r.FormValue("year")
	}

	payload, err := h.deps.CompareUpload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"), year)
	if err != nil {
		writeError(r.Context(), h.log, w, WrapKind(op, err, nil))
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func bodyErrorKind(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrTooLarge
	}
	return ErrBadRequest
}
