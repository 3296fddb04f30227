package accumulator_test

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/accumulator"
)

type shift struct {
	ID    int
	Title string
}

func shiftID(s shift) string {
	return strconv.Itoa(s.ID)
}

func shifts(ids ...int) []shift {
	out := make([]shift, len(ids))
	for i, id := range ids {
		out[i] = shift{ID: id, Title: "shift " + strconv.Itoa(id)}
	}
	return out
}

func ids(items []shift) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func page(items []shift) *feed.PageResponse[shift] {
	return &feed.PageResponse[shift]{Items: items}
}

var _ = Describe("Accumulator", func() {
	var (
		acc *accumulator.Accumulator[shift]
		q   feed.Query
	)

	BeforeEach(func() {
		acc = accumulator.New(feed.KindShifts, shiftID)
		q = feed.Query{Kind: feed.KindShifts, Page: 1, PerPage: 3}
	})

	It("starts empty on page 1", func() {
		Expect(acc.Items()).To(BeEmpty())
		Expect(acc.Len()).To(Equal(0))
		Expect(acc.CurrentPage()).To(Equal(1))
		Expect(acc.Accepted()).To(BeFalse())
		Expect(acc.Kind()).To(Equal(feed.KindShifts))
	})

	It("replaces the list with page 1", func() {
		Expect(acc.Apply(q, page(shifts(1, 2, 3)))).To(BeTrue())
		Expect(acc.Apply(q, page(shifts(7, 8)))).To(BeTrue())

		Expect(ids(acc.Items())).To(Equal([]int{7, 8}))
		Expect(acc.Listed("1")).To(BeFalse())
	})

	It("clears the list on an empty page 1", func() {
		acc.Apply(q, page(shifts(1, 2, 3)))
		Expect(acc.Apply(q, page(shifts()))).To(BeTrue())

		Expect(acc.Items()).To(BeEmpty())
		Expect(acc.Accepted()).To(BeTrue())
	})

	It("appends later pages in first-seen order without duplicates", func() {
		acc.Apply(q, page(shifts(1, 2, 3)))
		acc.Apply(q.WithPage(2), page(shifts(3, 4, 5)))
		acc.Apply(q.WithPage(3), page(shifts(6, 1)))

		Expect(ids(acc.Items())).To(Equal([]int{1, 2, 3, 4, 5, 6}))
		Expect(acc.CurrentPage()).To(Equal(3))
	})

	It("keeps the first-seen data of a duplicate id", func() {
		acc.Apply(q, page(shifts(1, 2)))
		acc.Apply(q.WithPage(2), page([]shift{{ID: 2, Title: "changed"}, {ID: 3}}))

		item, ok := acc.Lookup("2")
		Expect(ok).To(BeTrue())
		Expect(item.Title).To(Equal("shift 2"))
	})

	It("drops duplicates inside a single page", func() {
		acc.Apply(q, page(shifts(1, 1, 2)))

		Expect(ids(acc.Items())).To(Equal([]int{1, 2}))
	})

	It("ignores a re-delivered response", func() {
		acc.Apply(q, page(shifts(1, 2, 3)))
		acc.Apply(q.WithPage(2), page(shifts(4, 5, 6)))

		Expect(acc.Apply(q.WithPage(2), page(shifts(4, 5, 6)))).To(BeFalse())
		Expect(ids(acc.Items())).To(Equal([]int{1, 2, 3, 4, 5, 6}))
	})

	It("uses the page reported by the provider", func() {
		acc.Apply(q, page(shifts(1, 2, 3)))
		resp := &feed.PageResponse[shift]{
			Items:      shifts(4),
			Pagination: &feed.PaginationMeta{CurrentPage: feed.IntPtr(2)},
		}
		acc.Apply(q.WithPage(5), resp)

		Expect(acc.CurrentPage()).To(Equal(2))
	})

	It("forgets the last key on reset", func() {
		acc.Apply(q, page(shifts(1, 2, 3)))
		acc.Reset()

		Expect(acc.LastKey()).To(BeEmpty())
		Expect(acc.Items()).To(BeEmpty())
		Expect(acc.CurrentPage()).To(Equal(1))

		Expect(acc.Apply(q, page(shifts(1, 2, 3)))).To(BeTrue())
		Expect(acc.Len()).To(Equal(3))
	})

	It("returns copies of the list", func() {
		acc.Apply(q, page(shifts(1, 2)))
		items := acc.Items()
		items[0].Title = "mutated"

		item, _ := acc.Lookup("1")
		Expect(item.Title).To(Equal("shift 1"))
	})

	Describe("out-of-band items", func() {
		It("are available for lookup but not listed", func() {
			acc.Apply(q, page(shifts(1, 2)))
			Expect(acc.AddOutOfBand(shifts(99))).To(Equal(1))

			item, ok := acc.Lookup("99")
			Expect(ok).To(BeTrue())
			Expect(item.ID).To(Equal(99))
			Expect(acc.Listed("99")).To(BeFalse())
			Expect(acc.Len()).To(Equal(2))
		})

		It("skip ids that are already known", func() {
			acc.Apply(q, page(shifts(1, 2)))

			Expect(acc.AddOutOfBand(shifts(2, 50, 50))).To(Equal(1))
		})

		It("do not stop a later page from listing the same id", func() {
			acc.Apply(q, page(shifts(1, 2)))
			acc.AddOutOfBand(shifts(3))
			acc.Apply(q.WithPage(2), page(shifts(3, 4)))

			Expect(ids(acc.Items())).To(Equal([]int{1, 2, 3, 4}))
			Expect(acc.Listed("3")).To(BeTrue())
		})

		It("survive a page 1 replace", func() {
			acc.AddOutOfBand(shifts(99))
			acc.Apply(q, page(shifts(1)))

			_, ok := acc.Lookup("99")
			Expect(ok).To(BeTrue())
		})

		It("are dropped by reset", func() {
			acc.AddOutOfBand(shifts(99))
			acc.Reset()

			_, ok := acc.Lookup("99")
			Expect(ok).To(BeFalse())
		})
	})
})
