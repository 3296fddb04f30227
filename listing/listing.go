// Package listing defines the marketplace listing searched by the feed
// engine: one-off shifts and permanent jobs share the same record shape.
package listing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/feed-go"
)

// Listing is an object representing a row of the listings table.
type Listing struct {
	ID             int64       `boil:"id" json:"id"`
	Kind           string      `boil:"kind" json:"kind"`
	Title          string      `boil:"title" json:"title"`
	Venue          string      `boil:"venue" json:"venue"`
	Category       null.String `boil:"category" json:"category,omitempty"`
	Position       string      `boil:"position" json:"position"`
	Specialization null.String `boil:"specialization" json:"specialization,omitempty"`
	PayPerHour     int         `boil:"pay_per_hour" json:"pay_per_hour"`
	Urgent         bool        `boil:"urgent" json:"urgent"`
	StartDate      string      `boil:"start_date" json:"start_date"`
	EndDate        null.String `boil:"end_date" json:"end_date,omitempty"`
	Schedule       string      `boil:"schedule" json:"schedule"`
}

// Columns lists the listings table columns in insert order.
var Columns = []string{
	"id",
	"kind",
	"title",
	"venue",
	"category",
	"position",
	"specialization",
	"pay_per_hour",
	"urgent",
	"start_date",
	"end_date",
	"schedule",
}

// Table is the listings table name.
const Table = "listings"

// ID is the feed.IDFunc of listings.
func ID(l Listing) string {
	return strconv.FormatInt(l.ID, 10)
}

// Values returns the column values of l in Columns order.
func (l Listing) Values() []interface{} {
	return []interface{}{
		l.ID,
		l.Kind,
		l.Title,
		l.Venue,
		l.Category,
		l.Position,
		l.Specialization,
		l.PayPerHour,
		l.Urgent,
		l.StartDate,
		l.EndDate,
		l.Schedule,
	}
}

var (
	venues    = []string{"Harbor Grill", "Hotel Meridian", "Expo Center", "Cafe Lumen", "Grand Ballroom"}
	positions = []string{"waiter", "bartender", "cook", "host", "barista"}
	schedules = []string{"08:00-16:00", "12:00-20:00", "18:00-02:00"}
	cats      = []string{"restaurant", "hotel", "events"}
)

// Sample returns count deterministic listings of kind starting at firstID.
// Start dates spread over the week after from; every fifth listing is urgent.
// Used to seed local stores and in tests.
func Sample(kind feed.Kind, firstID int64, count int, from time.Time) []Listing {
	out := make([]Listing, 0, count)
	for i := 0; i < count; i++ {
		start := from.AddDate(0, 0, i%7)
		position := positions[i%len(positions)]

		l := Listing{
			ID:         firstID + int64(i),
			Kind:       string(kind),
			Title:      fmt.Sprintf("%s at %s", position, venues[i%len(venues)]),
			Venue:      venues[i%len(venues)],
			Category:   null.StringFrom(cats[i%len(cats)]),
			Position:   position,
			PayPerHour: 15 + (i*3)%30,
			Urgent:     i%5 == 0,
			StartDate:  start.Format(feed.DateLayout),
			Schedule:   schedules[i%len(schedules)],
		}
		if position == "cook" {
			l.Specialization = null.StringFrom("grill")
		}
		if kind == feed.KindShifts {
			l.EndDate = null.StringFrom(start.Format(feed.DateLayout))
		}

		out = append(out, l)
	}
	return out
}
