package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ledgerview/txn-ui-api/internal/domain/model"
	apperrors "github.com/ledgerview/txn-ui-api/internal/errors"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

// RecordHandlers covers the record mutations that are not part of the
// browser state machine proper. Each mutation resynchronizes the affected
// view so the next snapshot reflects the server.
type RecordHandlers struct {
	Gateway ports.RecordGateway
	Logger  *slog.Logger
}

func (h *RecordHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Add creates a new record from the add-transaction form.
// POST /api/records {description, originalAmount, date, currency}.
func (h *RecordHandlers) Add(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req model.NewRecordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Normalize()
	if err := req.Validate(time.Now()); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_record", Err: err})
		return
	}

	if err := h.Gateway.Add(r.Context(), req); err != nil {
		mapped := apperrors.MapUpstreamError(err)
		h.logger().WarnContext(r.Context(), "add record failed", "error", mapped)
		WriteError(w, ErrorParams{Code: apperrors.HTTPStatus(mapped), ErrCode: "add_failed", Err: mapped})
		return
	}

	sess.Browse.Reload(r.Context())
	WriteJSON(w, http.StatusCreated, sess.Browse.Snapshot())
}

// SoftDelete marks one record deleted.
// PUT /api/records/{id}/soft-delete.
func (h *RecordHandlers) SoftDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	// Outcome travels in the snapshot's notices; the reload already ran.
	_ = b.SoftDelete(r.Context(), id)
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// Restore brings one soft-deleted record back.
// PUT /api/records/{id}/restore.
func (h *RecordHandlers) Restore(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	_ = b.Restore(r.Context(), id)
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// Bulk applies one delete/restore transition to the selection set.
// POST /api/records/bulk {deleted}.
func (h *RecordHandlers) Bulk(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Deleted bool `json:"deleted"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	b := browserFor(r, sess)
	_ = b.BulkSetDeleted(r.Context(), body.Deleted)
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_record_id",
			Err:     errors.New("record id must be a positive integer"),
		})
		return 0, false
	}
	return id, true
}
