package coordinator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/coordinator"
)

type countingResetter struct {
	resets int
}

func (r *countingResetter) Reset() {
	r.resets++
}

var _ = Describe("ResetController", func() {
	var (
		target     *countingResetter
		controller *coordinator.ResetController
		query      feed.Query
	)

	BeforeEach(func() {
		target = &countingResetter{}
		controller = coordinator.NewResetController(target)
		query = feed.BuildQuery(feed.Selection{Category: "events"}, feed.PageArgs{Kind: feed.KindJobs})
	})

	It("has no baseline before the first query", func() {
		_, ok := controller.Baseline()

		Expect(ok).To(BeFalse())
		Expect(controller.IsCurrent(query)).To(BeFalse())
	})

	It("resets on the first query", func() {
		Expect(controller.Observe(query)).To(BeTrue())
		Expect(target.resets).To(Equal(1))

		baseline, ok := controller.Baseline()
		Expect(ok).To(BeTrue())
		Expect(baseline.Page).To(Equal(0))
		Expect(baseline.Equivalent(query)).To(BeTrue())
	})

	It("ignores page changes", func() {
		controller.Observe(query)

		Expect(controller.Observe(query.WithPage(5))).To(BeFalse())
		Expect(target.resets).To(Equal(1))
		Expect(controller.IsCurrent(query.WithPage(5))).To(BeTrue())
	})

	It("resets and moves the baseline on a filter change", func() {
		controller.Observe(query)
		changed := feed.BuildQuery(feed.Selection{Category: "hotels"}, feed.PageArgs{Kind: feed.KindJobs})

		Expect(controller.Observe(changed)).To(BeTrue())
		Expect(target.resets).To(Equal(2))
		Expect(controller.IsCurrent(query)).To(BeFalse())
		Expect(controller.IsCurrent(changed)).To(BeTrue())
	})
})
