package feed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/feed-go"
)

var _ = Describe("PageConfig", func() {
	Describe("EffectivePerPage", func() {
		It("uses the default when nothing is requested", func() {
			Expect(feed.NewPageConfig().EffectivePerPage(0)).To(Equal(feed.DefaultPerPage))
			Expect(feed.NewPageConfig().EffectivePerPage(-3)).To(Equal(feed.DefaultPerPage))
		})

		It("keeps a size within the limit", func() {
			Expect(feed.NewPageConfig().EffectivePerPage(35)).To(Equal(35))
		})

		It("caps sizes above the maximum", func() {
			config := feed.NewPageConfig().WithMaxSize(50)
			Expect(config.EffectivePerPage(80)).To(Equal(50))
		})

		It("handles a nil config", func() {
			var config *feed.PageConfig
			Expect(config.EffectivePerPage(0)).To(Equal(feed.DefaultPerPage))
		})

		It("ignores non-positive overrides", func() {
			config := feed.NewPageConfig().WithDefaultSize(0).WithMaxSize(-1)
			Expect(config.DefaultSize).To(Equal(feed.DefaultPerPage))
			Expect(config.MaxSize).To(Equal(feed.DefaultMaxPerPage))
		})
	})

	Describe("Validate", func() {
		It("accepts sizes up to the maximum", func() {
			Expect(feed.NewPageConfig().Validate(feed.DefaultMaxPerPage)).To(Succeed())
		})

		It("rejects sizes above the maximum", func() {
			err := feed.NewPageConfig().WithMaxSize(10).Validate(11)

			var sizeErr *feed.PageSizeError
			Expect(err).To(BeAssignableToTypeOf(sizeErr))
			Expect(err.Error()).To(Equal("requested page size 11 exceeds maximum allowed page size of 10"))
		})
	})

	Describe("ApplyPageOptions", func() {
		It("applies options over the defaults", func() {
			config := feed.ApplyPageOptions(feed.WithDefaultSize(5), feed.WithMaxSize(40))

			Expect(config.DefaultSize).To(Equal(5))
			Expect(config.MaxSize).To(Equal(40))
		})
	})
})
