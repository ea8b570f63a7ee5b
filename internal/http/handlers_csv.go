package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/ledgerview/txn-ui-api/internal/errors"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

// maxCSVUpload bounds the multipart form held in memory.
const maxCSVUpload = 10 << 20

// CSVHandlers proxies CSV import/export to the transactions API.
type CSVHandlers struct {
	Gateway ports.RecordGateway
	Logger  *slog.Logger
}

func (h *CSVHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Upload forwards a CSV file and reports per-row warnings.
// POST /api/csv (multipart, field "file").
func (h *CSVHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxCSVUpload); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_file",
			Err:     errors.New("a csv file is required"),
		})
		return
	}
	defer file.Close()

	warnings, err := h.Gateway.UploadCSV(r.Context(), header.Filename, file)
	if err != nil {
		mapped := apperrors.MapUpstreamError(err)
		h.logger().WarnContext(r.Context(), "csv upload failed", "error", mapped)
		WriteError(w, ErrorParams{Code: apperrors.HTTPStatus(mapped), ErrCode: "upload_failed", Err: mapped})
		return
	}

	sess.Browse.Reload(r.Context())
	WriteJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

// Download streams the CSV export through unchanged.
// GET /api/csv.
func (h *CSVHandlers) Download(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}
	body, err := h.Gateway.DownloadCSV(r.Context())
	if err != nil {
		mapped := apperrors.MapUpstreamError(err)
		h.logger().WarnContext(r.Context(), "csv download failed", "error", mapped)
		WriteError(w, ErrorParams{Code: apperrors.HTTPStatus(mapped), ErrCode: "download_failed", Err: mapped})
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		// Client gone mid-stream; nothing left to do.
		return
	}
}
