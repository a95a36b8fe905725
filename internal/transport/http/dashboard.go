package http

import (
	"context"
	"net/http"

	"github.com/cimillas/aplay-admin/internal/app"
)

type DashboardStatsService interface {
	Stats(ctx context.Context) (app.DashboardStats, error)
}

// HandleDashboard serves the landing-page counters and chart series in
// one response.
func HandleDashboard(svc DashboardStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dashboardResponse{
			Totals: dashboardTotals{
				Users:               stats.Totals.Users,
				Events:              stats.Totals.Events,
				Bookings:            stats.Totals.Bookings,
				ActiveVenues:        stats.Totals.ActiveVenues,
				OpenConcierge:       stats.Totals.OpenConcierge,
				ActiveSubscriptions: stats.Totals.ActiveSubscriptions,
			},
			BookingsPerDay:   toSeries(stats.BookingsPerDay),
			BookingsPerMonth: toSeries(stats.BookingsPerMonth),
			NewUsersPerMonth: toSeries(stats.NewUsersPerMonth),
			EventsPerMonth:   toSeries(stats.EventsPerMonth),
		})
	}
}

type dashboardTotals struct {
	Users               int `json:"users"`
	Events              int `json:"events"`
	Bookings            int `json:"bookings"`
	ActiveVenues        int `json:"active_venues"`
	OpenConcierge       int `json:"open_concierge"`
	ActiveSubscriptions int `json:"active_subscriptions"`
}

type seriesPoint struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type dashboardResponse struct {
	Totals           dashboardTotals `json:"totals"`
	BookingsPerDay   []seriesPoint   `json:"bookings_per_day"`
	BookingsPerMonth []seriesPoint   `json:"bookings_per_month"`
	NewUsersPerMonth []seriesPoint   `json:"new_users_per_month"`
	EventsPerMonth   []seriesPoint   `json:"events_per_month"`
}

func toSeries(points []app.SeriesPoint) []seriesPoint {
	out := make([]seriesPoint, 0, len(points))
	for _, p := range points {
		out = append(out, seriesPoint{Bucket: p.Bucket, Count: p.Count})
	}
	return out
}
