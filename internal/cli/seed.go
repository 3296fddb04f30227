package cli

import (
	"time"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/internal/config"
	"github.com/nrfta/feed-go/listing"
	"github.com/nrfta/feed-go/sqlboiler"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		shifts int
		jobs   int
		from   string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the listings table and insert demo listings",
		Long: `Creates the listings schema in the configured SQL store and inserts
deterministic demo shifts and jobs. Only the sql provider can be seeded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Provider.Type != config.ProviderSQL {
				return errors.Errorf("seed needs the sql provider, configured %q", a.cfg.Provider.Type)
			}

			start := time.Now().UTC()
			if from != "" {
				parsed, err := time.Parse(feed.DateLayout, from)
				if err != nil {
					return errors.Wrap(err, "parse --from")
				}
				start = parsed
			}

			dialect, err := sqlboiler.DialectFor(a.cfg.Provider.Driver)
			if err != nil {
				return err
			}

			db, err := openDB(a.cfg.Provider)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := sqlboiler.CreateSchema(ctx, db, dialect); err != nil {
				return err
			}

			rows := listing.Sample(feed.KindShifts, 1, shifts, start)
			rows = append(rows, listing.Sample(feed.KindJobs, int64(shifts)+1, jobs, start)...)
			if err := sqlboiler.InsertListings(ctx, db, dialect, rows...); err != nil {
				return err
			}

			a.logger.Info().
				Int("shifts", shifts).
				Int("jobs", jobs).
				Str("driver", a.cfg.Provider.Driver).
				Msg("listings seeded")
			cmd.Printf("seeded %d shifts and %d jobs\n", shifts, jobs)
			return nil
		},
	}

	cmd.Flags().IntVar(&shifts, "shifts", 40, "number of shifts to insert")
	cmd.Flags().IntVar(&jobs, "jobs", 15, "number of jobs to insert")
	cmd.Flags().StringVar(&from, "from", "", "first start date (YYYY-MM-DD), defaults to today")

	return cmd
}
