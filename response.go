package feed

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/friendsofgo/errors"
)

// wirePageResponse is the JSON shape served by search endpoints. Metadata
// lives under "pagination" or, for older endpoints, under "meta".
type wirePageResponse[T any] struct {
	Data       []T       `json:"data"`
	Pagination *wireMeta `json:"pagination"`
	Meta       *wireMeta `json:"meta"`
}

type wireMeta struct {
	CurrentPage *int            `json:"current_page"`
	TotalCount  *int            `json:"total_count"`
	NextPage    json.RawMessage `json:"next_page"`
	TotalPages  *int            `json:"total_pages"`
}

// DecodePageResponse parses a JSON search response into a normalized
// PageResponse. When both "pagination" and "meta" are present, "pagination"
// wins unless it carries no usable metadata. A "next_page" of null counts as
// absent; a non-numeric next page token counts as present.
func DecodePageResponse[T any](data []byte) (*PageResponse[T], error) {
	var wire wirePageResponse[T]
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "decode page response")
	}

	meta := wire.Pagination.normalize()
	if meta.Convention() == ConventionNone {
		if fallback := wire.Meta.normalize(); fallback.Convention() != ConventionNone {
			meta = fallback
		}
	}

	items := wire.Data
	if items == nil {
		items = []T{}
	}

	return &PageResponse[T]{
		Items:      items,
		Pagination: meta,
	}, nil
}

func (w *wireMeta) normalize() *PaginationMeta {
	if w == nil {
		return nil
	}

	return &PaginationMeta{
		CurrentPage: w.CurrentPage,
		TotalCount:  w.TotalCount,
		NextPage:    decodeNextPage(w.NextPage),
		TotalPages:  w.TotalPages,
	}
}

// decodeNextPage maps the raw next_page value to a page number.
// Tokens that are not integers are kept as present with page 0.
func decodeNextPage(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.Atoi(s); err == nil {
			return &parsed
		}
	}

	unknown := 0
	return &unknown
}
