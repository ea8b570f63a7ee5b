package httpx

import (
	"errors"
	"net/http"

	"github.com/ledgerview/txn-ui-api/internal/domain/model"
	"github.com/ledgerview/txn-ui-api/internal/service"
)

// BrowserHandlers exposes the record-browser state machine over HTTP. Every
// mutation returns the fresh view snapshot so the frontend never has to
// issue a follow-up read.
type BrowserHandlers struct{}

// browserFor picks the live listing or the soft-deleted restore view based
// on the ?view query parameter.
func browserFor(r *http.Request, sess *service.UserSession) *service.Browser {
	if r.URL.Query().Get("view") == "trash" {
		return sess.Trash
	}
	return sess.Browse
}

func requireSession(w http.ResponseWriter, r *http.Request) (*service.UserSession, bool) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
	}
	return sess, ok
}

// Snapshot returns the current view state.
// GET /api/browse[?view=trash][&refresh=true].
func (h *BrowserHandlers) Snapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	if r.URL.Query().Get("refresh") == "true" {
		b.Reload(r.Context())
	}
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// SetPage moves to another page.
// POST /api/browse/page {page}.
func (h *BrowserHandlers) SetPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Page int `json:"page"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	b := browserFor(r, sess)
	b.SetPage(r.Context(), body.Page)
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// SetLimit switches the page size.
// POST /api/browse/limit {limit}.
func (h *BrowserHandlers) SetLimit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Limit int `json:"limit"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	b := browserFor(r, sess)
	if err := b.SetLimit(r.Context(), body.Limit); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_limit", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// Search activates the search predicate.
// POST /api/browse/search {field, value}.
func (h *BrowserHandlers) Search(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	b := browserFor(r, sess)
	if err := b.Search(r.Context(), model.SearchField(body.Field), body.Value); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_search", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// CancelSearch deactivates the search predicate.
// POST /api/browse/search/cancel.
func (h *BrowserHandlers) CancelSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	b.CancelSearch(r.Context())
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// ToggleSelect flips one row's checkbox.
// POST /api/browse/select {id}.
func (h *BrowserHandlers) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	b := browserFor(r, sess)
	b.ToggleSelect(body.ID)
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// SelectAll selects every displayed row.
// POST /api/browse/select-all.
func (h *BrowserHandlers) SelectAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	b.SelectAll()
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// ClearSelection empties the selection set.
// POST /api/browse/clear.
func (h *BrowserHandlers) ClearSelection(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	b.ClearSelection()
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// BeginEdit opens the edit buffer for one row.
// POST /api/browse/edit {id}.
func (h *BrowserHandlers) BeginEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	b := browserFor(r, sess)
	if err := b.BeginEdit(body.ID); err != nil {
		code := "record_not_displayed"
		if errors.Is(err, service.ErrEditInProgress) {
			code = "edit_in_progress"
		}
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: code, Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// CommitEdit validates and saves the edit buffer.
// PUT /api/browse/edit {description, originalAmount, date, currency}.
func (h *BrowserHandlers) CommitEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	var fields model.RecordFields
	if !DecodeJSON(w, r, &fields) {
		return
	}
	b := browserFor(r, sess)
	// The commit outcome, success or failure, travels in the snapshot's
	// notices; the buffer stays open on failure.
	_ = b.CommitEdit(r.Context(), fields)
	WriteJSON(w, http.StatusOK, b.Snapshot())
}

// CancelEdit discards the edit buffer.
// DELETE /api/browse/edit.
func (h *BrowserHandlers) CancelEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	b := browserFor(r, sess)
	b.CancelEdit()
	WriteJSON(w, http.StatusOK, b.Snapshot())
}
