package feed

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

// ErrNilResponse is reported when a provider returns neither a page nor an error.
var ErrNilResponse = errors.New("provider returned no page and no error")

// FetchError describes a failed page request.
//
// A failure on the first page leaves the feed without usable data and is
// blocking. A failure on a later page keeps what was already loaded and can be
// retried by loading more again.
type FetchError struct {
	Kind      Kind
	Page      int
	RequestID string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s page %d: %v", e.Kind, e.Page, e.Err)
}

// Unwrap returns the provider error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Initial reports whether the failed request was for the first page.
func (e *FetchError) Initial() bool {
	return e.Page <= 1
}
