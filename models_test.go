package feed_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/feed-go"
)

var _ = Describe("BuildQuery", func() {
	args := feed.PageArgs{Kind: feed.KindShifts, Page: 1, PerPage: 10}

	It("omits every unset filter", func() {
		q := feed.BuildQuery(feed.Selection{}, args)

		Expect(q).To(Equal(feed.Query{Kind: feed.KindShifts, Page: 1, PerPage: 10}))
	})

	It("copies set filters", func() {
		minPay, maxPay := 15, 40
		q := feed.BuildQuery(feed.Selection{
			Category:       "restaurant",
			UrgentOnly:     true,
			PriceMin:       &minPay,
			PriceMax:       &maxPay,
			Position:       " waiter ",
			Specialization: "sommelier",
			StartDate:      time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC),
		}, args)

		Expect(*q.Category).To(Equal("restaurant"))
		Expect(*q.UrgentOnly).To(BeTrue())
		Expect(*q.PriceMin).To(Equal(15))
		Expect(*q.PriceMax).To(Equal(40))
		Expect(*q.Position).To(Equal("waiter"))
		Expect(*q.Specialization).To(Equal("sommelier"))
		Expect(*q.StartDate).To(Equal("2026-10-18"))
		Expect(*q.EndDate).To(Equal("2026-10-20"))
	})

	It("does not alias the selection's price pointers", func() {
		minPay := 15
		q := feed.BuildQuery(feed.Selection{PriceMin: &minPay}, args)
		minPay = 99

		Expect(*q.PriceMin).To(Equal(15))
	})

	It("normalizes page and page size", func() {
		q := feed.BuildQuery(feed.Selection{}, feed.PageArgs{Kind: feed.KindJobs, Page: -2, PerPage: 500})

		Expect(q.Page).To(Equal(1))
		Expect(q.PerPage).To(Equal(feed.DefaultMaxPerPage))
	})

	It("honors page options", func() {
		q := feed.BuildQuery(feed.Selection{}, feed.PageArgs{Kind: feed.KindJobs}, feed.WithDefaultSize(7))

		Expect(q.PerPage).To(Equal(7))
	})

	Describe("quick filters", func() {
		now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

		It("maps urgent to the urgent-only filter", func() {
			q := feed.BuildQuery(feed.Selection{QuickFilter: feed.QuickUrgent}, args)

			Expect(q.UrgentOnly).ToNot(BeNil())
			Expect(*q.UrgentOnly).To(BeTrue())
		})

		It("resolves today, tomorrow and week from the reference time", func() {
			today := feed.BuildQuery(feed.Selection{QuickFilter: feed.QuickToday, Now: now}, args)
			Expect(*today.StartDate).To(Equal("2026-10-18"))
			Expect(*today.EndDate).To(Equal("2026-10-18"))

			tomorrow := feed.BuildQuery(feed.Selection{QuickFilter: feed.QuickTomorrow, Now: now}, args)
			Expect(*tomorrow.StartDate).To(Equal("2026-10-19"))
			Expect(*tomorrow.EndDate).To(Equal("2026-10-19"))

			week := feed.BuildQuery(feed.Selection{QuickFilter: feed.QuickWeek, Now: now}, args)
			Expect(*week.StartDate).To(Equal("2026-10-18"))
			Expect(*week.EndDate).To(Equal("2026-10-24"))
		})

		It("ignores date presets without a reference time", func() {
			q := feed.BuildQuery(feed.Selection{QuickFilter: feed.QuickToday}, args)

			Expect(q.StartDate).To(BeNil())
			Expect(q.EndDate).To(BeNil())
		})

		It("lets explicit dates win over a preset", func() {
			q := feed.BuildQuery(feed.Selection{
				QuickFilter: feed.QuickWeek,
				Now:         now,
				StartDate:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			}, args)

			Expect(*q.StartDate).To(Equal("2026-11-01"))
			Expect(q.EndDate).To(BeNil())
		})
	})
})

var _ = Describe("Query", func() {
	position := "bartender"
	base := feed.Query{Kind: feed.KindShifts, Page: 1, PerPage: 10, Position: &position}

	It("treats queries that differ only in page as equivalent", func() {
		Expect(base.Equivalent(base.WithPage(4))).To(BeTrue())
	})

	It("compares pointer fields by value", func() {
		other := "bartender"
		q := base
		q.Position = &other

		Expect(base.Equivalent(q)).To(BeTrue())
	})

	It("detects filter changes", func() {
		urgent := true
		q := base
		q.UrgentOnly = &urgent

		Expect(base.Equivalent(q)).To(BeFalse())
	})

	It("detects a page size change", func() {
		q := base
		q.PerPage = 25

		Expect(base.Equivalent(q)).To(BeFalse())
	})

	It("clears the page in the baseline", func() {
		Expect(base.WithPage(3).Baseline().Page).To(Equal(0))
		Expect(base.Page).To(Equal(1))
	})
})
