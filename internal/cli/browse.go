package cli

import (
	"context"
	"sort"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/coordinator"
	"github.com/nrfta/feed-go/listing"
)

type browseOptions struct {
	kinds          []string
	category       string
	urgent         bool
	position       string
	specialization string
	priceMin       int
	priceMax       int
	quick          string
	from           string
	to             string
	perPage        int
	pages          int
	highlights     bool
	timeout        time.Duration
}

func newBrowseCmd(a *app) *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through listing feeds",
		Long: `Runs one feed coordinator per kind, loads the requested number of pages
with the given filters and prints the accumulated lists.`,
		Example: `  # First two pages of waiter shifts tomorrow
  feedctl browse --kind shifts --position waiter --quick tomorrow --pages 2

  # Jobs paying at least 20 per hour, with urgent highlights
  feedctl browse --kind jobs --price-min 20 --highlights`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := opts.selection(cmd)
			if err != nil {
				return err
			}
			return runBrowse(cmd, a, opts, sel)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.kinds, "kind", "k", []string{string(feed.KindShifts), string(feed.KindJobs)}, "feeds to browse")
	cmd.Flags().StringVar(&opts.category, "category", "", "category filter")
	cmd.Flags().BoolVar(&opts.urgent, "urgent", false, "only urgent listings")
	cmd.Flags().StringVar(&opts.position, "position", "", "position filter")
	cmd.Flags().StringVar(&opts.specialization, "specialization", "", "specialization filter")
	cmd.Flags().IntVar(&opts.priceMin, "price-min", 0, "minimum pay per hour")
	cmd.Flags().IntVar(&opts.priceMax, "price-max", 0, "maximum pay per hour")
	cmd.Flags().StringVar(&opts.quick, "quick", "", "quick filter: urgent, today, tomorrow or week")
	cmd.Flags().StringVar(&opts.from, "from", "", "earliest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "latest start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "page size, defaults to the configured per_page")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of pages to load per feed")
	cmd.Flags().BoolVar(&opts.highlights, "highlights", false, "also load urgent highlights per feed")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall time limit")

	return cmd
}

// selection turns the filter flags into a feed.Selection.
func (o *browseOptions) selection(cmd *cobra.Command) (feed.Selection, error) {
	sel := feed.Selection{
		Category:       o.category,
		UrgentOnly:     o.urgent,
		Position:       o.position,
		Specialization: o.specialization,
		QuickFilter:    feed.QuickFilter(o.quick),
		Now:            time.Now(),
	}

	switch sel.QuickFilter {
	case feed.QuickNone, feed.QuickUrgent, feed.QuickToday, feed.QuickTomorrow, feed.QuickWeek:
	default:
		return sel, errors.Errorf("unknown quick filter %q", o.quick)
	}

	if cmd.Flags().Changed("price-min") {
		sel.PriceMin = &o.priceMin
	}
	if cmd.Flags().Changed("price-max") {
		sel.PriceMax = &o.priceMax
	}

	var err error
	if sel.StartDate, err = parseDate(o.from); err != nil {
		return sel, errors.Wrap(err, "parse --from")
	}
	if sel.EndDate, err = parseDate(o.to); err != nil {
		return sel, errors.Wrap(err, "parse --to")
	}

	for _, name := range o.kinds {
		if kind := feed.Kind(name); kind != feed.KindShifts && kind != feed.KindJobs {
			return sel, errors.Errorf("unknown kind %q", name)
		}
	}

	if o.pages < 1 {
		return sel, errors.Errorf("--pages must be positive, got %d", o.pages)
	}
	return sel, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(feed.DateLayout, s)
}

func runBrowse(cmd *cobra.Command, a *app, opts *browseOptions, sel feed.Selection) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	provider, closeProvider, err := newProvider(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	feeds := coordinator.NewFeeds(ctx, provider, listing.ID, coordinator.WithLogger(a.logger))
	defer feeds.Close()

	pageConfig := a.cfg.PageConfig()
	states := make([]coordinator.State[listing.Listing], len(opts.kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range opts.kinds {
		kind := feed.Kind(name)
		c := feeds.Mount(kind)
		args := feed.PageArgs{Kind: kind, Page: 1, PerPage: opts.perPage}
		q := feed.BuildQuery(sel, args,
			feed.WithDefaultSize(pageConfig.DefaultSize),
			feed.WithMaxSize(pageConfig.MaxSize),
		)

		g.Go(func() error {
			state, err := browseFeed(gctx, c, q, opts)
			states[i] = state
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sort.SliceStable(states, func(i, j int) bool { return states[i].Kind < states[j].Kind })
	for _, state := range states {
		cmd.Println(renderFeed(state))
	}
	return nil
}

// browseFeed loads up to opts.pages pages of q on c and returns the settled
// state. A failed later page ends paging but keeps the loaded items.
func browseFeed(
	ctx context.Context,
	c *coordinator.Coordinator[listing.Listing],
	q feed.Query,
	opts *browseOptions,
) (coordinator.State[listing.Listing], error) {
	c.SetQuery(q)
	if opts.highlights {
		urgent := true
		highlights := q.WithPage(1)
		highlights.UrgentOnly = &urgent
		c.SetAuxiliaryQuery(highlights)
	}

	state, err := c.Settle(ctx)
	if err != nil {
		return state, err
	}
	if state.Err != nil {
		return state, state.Err
	}

	for page := 1; page < opts.pages && state.HasMore; page++ {
		c.LoadMore()
		if state, err = c.Settle(ctx); err != nil {
			return state, err
		}
		if state.LoadMoreErr != nil {
			break
		}
	}

	return state, nil
}
