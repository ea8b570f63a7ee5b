package ports

import (
	"context"
	"io"

	"github.com/ledgerview/txn-ui-api/internal/domain/model"
)

// RecordGateway is the client-side view of the remote transactions API.
// All durable record state lives behind it; this service only ever
// re-derives its view from the gateway's responses.
type RecordGateway interface {
	// List fetches one page. It routes to the plain listing or the search
	// endpoint depending on whether q has an active search predicate.
	List(ctx context.Context, q model.BrowseQuery) (model.ListResult, error)

	Add(ctx context.Context, req model.NewRecordRequest) error
	Update(ctx context.Context, id int64, req model.UpdateRecordRequest) error

	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	// BulkSetDeleted applies one soft-delete (deleted=true) or restore
	// (deleted=false) transition to every id.
	BulkSetDeleted(ctx context.Context, ids []int64, deleted bool) error

	// UploadCSV forwards a CSV file and returns per-row import warnings.
	UploadCSV(ctx context.Context, filename string, file io.Reader) ([]string, error)
	// DownloadCSV streams the full export; the caller closes the reader.
	DownloadCSV(ctx context.Context) (io.ReadCloser, error)
}
