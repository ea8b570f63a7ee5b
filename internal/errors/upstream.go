package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/ledgerview/txn-ui-api/internal/adapters/upstream"
)

// MapUpstreamError classifies a transactions-API failure into an AppError
// so handlers can pick a response status without inspecting transport
// details. Unrecognized errors come back as ErrCodeUnavailable since the
// remote collaborator is the only thing these calls talk to.
func MapUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(ErrCodeTimeout, "transactions API timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(ErrCodeCanceled, "request canceled", err)
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			return Wrap(ErrCodeNotFound, apiErr.Message, err)
		case apiErr.StatusCode == http.StatusBadRequest,
			apiErr.StatusCode == http.StatusUnprocessableEntity:
			return Wrap(ErrCodeValidation, apiErr.Message, err)
		case apiErr.StatusCode == http.StatusRequestTimeout:
			return Wrap(ErrCodeTimeout, apiErr.Message, err)
		}
	}
	return Wrap(ErrCodeUnavailable, "transactions API request failed", err)
}

// HTTPStatus maps an error's code to the response status this service
// should answer with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return http.StatusRequestTimeout
	case ErrCodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
