package feed

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// noFirstID stands in for the first item id of an empty page.
const noFirstID = "-"

// Fingerprint builds an opaque key identifying a delivered response by its
// resource kind, page, item count and first item id, encoded as base64 of
// "response:KIND:PAGE:COUNT:FIRST". The reported page wins over the requested
// one when the provider sent it.
//
// The key only detects re-delivery of a response that was already applied.
// It says nothing about whether the response belongs to the current query.
func Fingerprint(kind Kind, reportedPage *int, requestedPage, count int, firstID string) string {
	page := requestedPage
	if reportedPage != nil {
		page = *reportedPage
	}

	if firstID == "" {
		firstID = noFirstID
	}

	data := strings.Join([]string{
		"response",
		string(kind),
		strconv.Itoa(page),
		strconv.Itoa(count),
		firstID,
	}, ":")

	return base64.URLEncoding.EncodeToString([]byte(data))
}

// ResponseFingerprint computes the Fingerprint of resp as delivered for q.
func ResponseFingerprint[T any](q Query, resp *PageResponse[T], id IDFunc[T]) string {
	var reported *int
	if resp.Pagination != nil {
		reported = resp.Pagination.CurrentPage
	}

	firstID := ""
	if len(resp.Items) > 0 {
		firstID = id(resp.Items[0])
	}

	return Fingerprint(q.Kind, reported, q.Page, len(resp.Items), firstID)
}

// ResponsePage returns the page a response represents: the page reported by
// the provider, or the requested page when none was reported.
func ResponsePage[T any](q Query, resp *PageResponse[T]) int {
	if resp.Pagination != nil && resp.Pagination.CurrentPage != nil {
		return *resp.Pagination.CurrentPage
	}
	return q.Page
}
