package feed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/feed-go"
)

var _ = Describe("Fingerprint", func() {
	It("encodes kind, page, count and first id", func() {
		key := feed.Fingerprint(feed.KindShifts, nil, 2, 5, "41")

		Expect(key).To(Equal("cmVzcG9uc2U6c2hpZnRzOjI6NTo0MQ=="))
	})

	It("uses a placeholder for an empty page", func() {
		key := feed.Fingerprint(feed.KindJobs, nil, 1, 0, "")

		Expect(key).To(Equal("cmVzcG9uc2U6am9iczoxOjA6LQ=="))
	})

	It("prefers the reported page", func() {
		reported := feed.Fingerprint(feed.KindShifts, feed.IntPtr(2), 7, 5, "41")

		Expect(reported).To(Equal(feed.Fingerprint(feed.KindShifts, nil, 2, 5, "41")))
	})

	It("separates kinds", func() {
		Expect(feed.Fingerprint(feed.KindShifts, nil, 1, 3, "9")).
			ToNot(Equal(feed.Fingerprint(feed.KindJobs, nil, 1, 3, "9")))
	})

	Describe("ResponseFingerprint", func() {
		q := feed.Query{Kind: feed.KindShifts, Page: 2, PerPage: 5}

		It("matches the key of the same delivery", func() {
			resp := &feed.PageResponse[testItem]{
				Items: []testItem{{ID: "41"}, {ID: "42"}, {ID: "43"}, {ID: "44"}, {ID: "45"}},
			}

			Expect(feed.ResponseFingerprint(q, resp, testItemID)).To(Equal("cmVzcG9uc2U6c2hpZnRzOjI6NTo0MQ=="))
		})

		It("resolves the page from the response first", func() {
			resp := &feed.PageResponse[testItem]{
				Items:      []testItem{},
				Pagination: &feed.PaginationMeta{CurrentPage: feed.IntPtr(3)},
			}

			Expect(feed.ResponsePage(q, resp)).To(Equal(3))
			Expect(feed.ResponsePage(q, &feed.PageResponse[testItem]{})).To(Equal(2))
		})
	})
})

var _ = Describe("FetchError", func() {
	It("describes the failed page and unwraps the cause", func() {
		cause := feed.ErrNilResponse
		err := &feed.FetchError{Kind: feed.KindJobs, Page: 3, RequestID: "r-1", Err: cause}

		Expect(err.Error()).To(Equal("fetch jobs page 3: provider returned no page and no error"))
		Expect(err).To(MatchError(cause))
		Expect(err.Initial()).To(BeFalse())
	})

	It("marks first page failures as initial", func() {
		Expect((&feed.FetchError{Page: 1}).Initial()).To(BeTrue())
	})
})
