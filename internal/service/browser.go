package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ledgerview/txn-ui-api/internal/domain/model"
	"github.com/ledgerview/txn-ui-api/internal/ports"
)

// Notice is a transient user-facing notification (the toast analog).
// Notices accumulate until drained by a snapshot.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// BrowserOptions groups dependencies for Browser.
type BrowserOptions struct {
	Gateway ports.RecordGateway
	// IncludeDeleted selects the restore (soft-deleted records) view.
	IncludeDeleted bool
	Logger         *slog.Logger
}

// Browser coordinates pagination, search, bulk selection, and in-place
// editing against the remote paged listing, keeping the derived view state
// consistent with the latest successful fetch.
//
// Mutating operations snapshot the query under the lock, issue the network
// call unlocked, and apply the result when it resolves. Requests are not
// serialized or cancelled, so when fetches overlap, the last response to
// RESOLVE wins, which is not necessarily the last request issued. That
// mirrors the original client and is documented as a known hazard.
type Browser struct {
	gateway ports.RecordGateway
	logger  *slog.Logger

	mu         sync.Mutex
	query      model.BrowseQuery
	rows       []model.Record
	totalPages int
	selection  map[int64]struct{}
	edit       *model.Record
	notices    []Notice
}

// Snapshot is the derived view state handed to the presentation layer.
// Notices are drained by the call that produced the snapshot.
type Snapshot struct {
	Rows           []model.Record    `json:"transactions"`
	Page           int               `json:"page"`
	TotalPages     int               `json:"totalPages"`
	Limit          int               `json:"limit"`
	SearchField    model.SearchField `json:"searchField"`
	SearchValue    string            `json:"searchValue"`
	SearchActive   bool              `json:"searchActive"`
	IncludeDeleted bool              `json:"includeDeleted"`
	Selected       []int64           `json:"selected"`
	Editing        *model.Record     `json:"editing,omitempty"`
	Notices        []Notice          `json:"notices,omitempty"`
}

// ErrEditInProgress is returned by BeginEdit while another row's edit
// buffer is open.
var ErrEditInProgress = errors.New("another row is already being edited")

// NewBrowser constructs a browser view at page 1 with the default limit
// and an inactive search predicate.
func NewBrowser(opts BrowserOptions) *Browser {
	if opts.Gateway == nil {
		panic("RecordGateway is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{
		gateway:    opts.Gateway,
		logger:     logger,
		query:      model.DefaultBrowseQuery(opts.IncludeDeleted),
		totalPages: 1,
		selection:  make(map[int64]struct{}),
	}
}

// SetPage moves to page n and reloads. Out-of-range pages are a no-op:
// no state change, no network call. Moving pages always empties the
// selection.
func (b *Browser) SetPage(ctx context.Context, n int) {
	b.mu.Lock()
	if n < 1 || n > b.totalPages {
		b.mu.Unlock()
		return
	}
	b.query.Page = n
	b.clearSelectionLocked()
	b.mu.Unlock()

	b.Reload(ctx)
}

// SetLimit switches to one of the enumerated page sizes and reloads.
// The view always re-anchors to page 1 so the new size cannot reference a
// page that no longer exists.
func (b *Browser) SetLimit(ctx context.Context, n int) error {
	if !model.ValidPageLimit(n) {
		b.notifyError(fmt.Sprintf("invalid page size %d", n))
		return fmt.Errorf("invalid page size %d", n)
	}

	b.mu.Lock()
	b.query.Limit = n
	b.query.Page = 1
	b.clearSelectionLocked()
	b.mu.Unlock()

	b.Reload(ctx)
	return nil
}

// Search activates the predicate and reloads from page 1. A blank value or
// a type-invalid one is rejected locally with a validation notice and no
// network call is made.
func (b *Browser) Search(ctx context.Context, field model.SearchField, value string) error {
	if err := model.ValidateSearch(field, value); err != nil {
		b.notifyError(err.Error())
		return err
	}

	b.mu.Lock()
	b.query.SearchField = field
	b.query.SearchValue = value
	b.query.SearchActive = true
	b.query.Page = 1
	b.clearSelectionLocked()
	b.mu.Unlock()

	b.Reload(ctx)
	return nil
}

// CancelSearch deactivates the predicate, restores its defaults
// (description, empty value), re-anchors to page 1, and reloads.
func (b *Browser) CancelSearch(ctx context.Context) {
	b.mu.Lock()
	b.query.SearchField = model.SearchDescription
	b.query.SearchValue = ""
	b.query.SearchActive = false
	b.query.Page = 1
	b.clearSelectionLocked()
	b.mu.Unlock()

	b.Reload(ctx)
}

// Reload fetches the current query. On success the loaded rows and total
// page count are replaced and the selection is pruned to the loaded ids.
// On failure the prior rows stay visible and a transient error notice is
// surfaced; nothing is destructively cleared.
func (b *Browser) Reload(ctx context.Context) {
	b.mu.Lock()
	q := b.query
	b.mu.Unlock()

	result, err := b.gateway.List(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logger.WarnContext(ctx, "record fetch failed", "error", err, "page", q.Page)
		b.noticesLocked(NoticeError, "Error fetching data")
		return
	}

	b.rows = result.Transactions
	b.totalPages = result.Pages
	if b.totalPages < 1 {
		b.totalPages = 1
	}
	// Selection must stay a subset of the displayed ids.
	loaded := make(map[int64]struct{}, len(b.rows))
	for _, r := range b.rows {
		loaded[r.ID] = struct{}{}
	}
	for id := range b.selection {
		if _, ok := loaded[id]; !ok {
			delete(b.selection, id)
		}
	}

	msg := result.Message
	if msg == "" {
		msg = "Data fetched successfully"
	}
	b.noticesLocked(NoticeSuccess, msg)
}

// ToggleSelect flips the checkbox for id. Ids not on the displayed page
// are ignored, preserving the subset invariant.
func (b *Browser) ToggleSelect(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.displayedLocked(id) {
		return
	}
	if _, ok := b.selection[id]; ok {
		delete(b.selection, id)
		return
	}
	b.selection[id] = struct{}{}
}

// SelectAll selects every currently displayed record. "All" means the
// loaded page, never all matches across pages.
func (b *Browser) SelectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.rows {
		b.selection[r.ID] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (b *Browser) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearSelectionLocked()
}

// SelectedIDs returns the selected ids in ascending order.
func (b *Browser) SelectedIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedLocked()
}

// BeginEdit opens the edit buffer as a copy of the displayed row. Only one
// row may be in edit mode; a second BeginEdit is rejected.
func (b *Browser) BeginEdit(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.edit != nil {
		b.noticesLocked(NoticeError, "finish the current edit first")
		return ErrEditInProgress
	}
	for _, r := range b.rows {
		if r.ID == id {
			row := r
			b.edit = &row
			return nil
		}
	}
	return fmt.Errorf("record %d is not on the displayed page", id)
}

// CommitEdit validates and normalizes the edited fields, sends the update,
// and on success clears the buffer and resynchronizes from the server. On
// any failure the buffer stays open for correction.
func (b *Browser) CommitEdit(ctx context.Context, fields model.RecordFields) error {
	b.mu.Lock()
	if b.edit == nil {
		b.mu.Unlock()
		return errors.New("no row is being edited")
	}
	id := b.edit.ID

	fields.Normalize()
	if err := fields.Validate(); err != nil {
		b.noticesLocked(NoticeError, err.Error())
		b.mu.Unlock()
		return err
	}
	// Keep the working copy in step with what is being sent.
	b.edit.Description = fields.Description
	b.edit.OriginalAmount = fields.OriginalAmount
	b.edit.Date = fields.Date
	b.edit.Currency = fields.Currency
	b.mu.Unlock()

	err := b.gateway.Update(ctx, id, model.UpdateRecordRequest{RecordFields: fields})

	b.mu.Lock()
	if err != nil {
		b.noticesLocked(NoticeError, fmt.Sprintf("Error updating record: %s", err))
		b.mu.Unlock()
		return fmt.Errorf("update record %d: %w", id, err)
	}
	b.edit = nil
	b.noticesLocked(NoticeSuccess, "Record updated successfully")
	b.mu.Unlock()

	b.Reload(ctx)
	return nil
}

// CancelEdit discards the edit buffer without any network call.
func (b *Browser) CancelEdit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edit = nil
}

// SoftDelete marks one record deleted, then resynchronizes from the server
// regardless of the outcome so deleted rows never linger in the live view.
func (b *Browser) SoftDelete(ctx context.Context, id int64) error {
	err := b.gateway.SoftDelete(ctx, id)
	if err != nil {
		b.notifyError(fmt.Sprintf("Error deleting record: %s", err))
	} else {
		b.notifySuccess("Record deleted successfully")
	}
	b.Reload(ctx)
	if err != nil {
		return fmt.Errorf("soft-delete record %d: %w", id, err)
	}
	return nil
}

// Restore brings one soft-deleted record back, then resynchronizes.
func (b *Browser) Restore(ctx context.Context, id int64) error {
	err := b.gateway.Restore(ctx, id)
	if err != nil {
		b.notifyError(fmt.Sprintf("Error restoring record: %s", err))
	} else {
		b.notifySuccess("Record restored successfully")
	}
	b.Reload(ctx)
	if err != nil {
		return fmt.Errorf("restore record %d: %w", id, err)
	}
	return nil
}

// BulkSetDeleted applies one delete/restore transition to every selected
// record. On success the selection empties and the view resynchronizes;
// on failure one consolidated error is reported and the selection is kept
// so the user can retry.
func (b *Browser) BulkSetDeleted(ctx context.Context, deleted bool) error {
	b.mu.Lock()
	ids := b.selectedLocked()
	b.mu.Unlock()
	if len(ids) == 0 {
		b.notifyError("no records selected")
		return errors.New("no records selected")
	}

	err := b.gateway.BulkSetDeleted(ctx, ids, deleted)

	b.mu.Lock()
	if err != nil {
		b.noticesLocked(NoticeError, fmt.Sprintf("Error updating %d selected records: %s", len(ids), err))
		b.mu.Unlock()
		return fmt.Errorf("bulk transition %d records: %w", len(ids), err)
	}
	b.clearSelectionLocked()
	b.noticesLocked(NoticeSuccess, "Selected records updated successfully")
	b.mu.Unlock()

	b.Reload(ctx)
	return nil
}

// Snapshot returns the current derived view state and drains pending
// notices.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows := make([]model.Record, len(b.rows))
	copy(rows, b.rows)

	var editing *model.Record
	if b.edit != nil {
		row := *b.edit
		editing = &row
	}

	notices := b.notices
	b.notices = nil

	return Snapshot{
		Rows:           rows,
		Page:           b.query.Page,
		TotalPages:     b.totalPages,
		Limit:          b.query.Limit,
		SearchField:    b.query.SearchField,
		SearchValue:    b.query.SearchValue,
		SearchActive:   b.query.SearchActive,
		IncludeDeleted: b.query.IncludeDeleted,
		Selected:       b.selectedLocked(),
		Editing:        editing,
		Notices:        notices,
	}
}

func (b *Browser) displayedLocked(id int64) bool {
	for _, r := range b.rows {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (b *Browser) clearSelectionLocked() {
	b.selection = make(map[int64]struct{})
}

func (b *Browser) selectedLocked() []int64 {
	ids := make([]int64, 0, len(b.selection))
	for id := range b.selection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (b *Browser) noticesLocked(level, message string) {
	b.notices = append(b.notices, Notice{Level: level, Message: message})
}

func (b *Browser) notifyError(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.noticesLocked(NoticeError, message)
}

func (b *Browser) notifySuccess(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.noticesLocked(NoticeSuccess, message)
}
