package app

import (
	"context"
	"time"

	"github.com/cimillas/aplay-admin/internal/clock"
)

// DashboardTotals are the headline counters on the admin landing page.
type DashboardTotals struct {
	Users               int
	Events              int
	Bookings            int
	ActiveVenues        int
	OpenConcierge       int
	ActiveSubscriptions int
}

// SeriesPoint is one chart bucket: a day ("2006-01-02") or a month
// ("2006-01") and the count that fell into it. Empty buckets are kept
// so charts render contiguous axes.
type SeriesPoint struct {
	Bucket string
	Count  int
}

type DashboardStats struct {
	Totals           DashboardTotals
	BookingsPerDay   []SeriesPoint
	BookingsPerMonth []SeriesPoint
	NewUsersPerMonth []SeriesPoint
	EventsPerMonth   []SeriesPoint
}

const (
	dashboardDays   = 30
	dashboardMonths = 12
)

// StatsRepository hands back raw counts and timestamps; the grouping
// into buckets happens here, mirroring how the dashboard screens
// aggregate client-side.
type StatsRepository interface {
	Totals(ctx context.Context) (DashboardTotals, error)
	BookingTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	SignupTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	EventTimes(ctx context.Context, since time.Time) ([]time.Time, error)
}

type DashboardService struct {
	repo  StatsRepository
	clock clock.Clock
}

func NewDashboardService(repo StatsRepository, clk clock.Clock) *DashboardService {
	return &DashboardService{repo: repo, clock: clk}
}

func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	now := s.clock.Now()
	dayHorizon := now.AddDate(0, 0, -(dashboardDays - 1)).Truncate(24 * time.Hour)
	monthHorizon := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(dashboardMonths - 1), 0)

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	bookingTimes, err := s.repo.BookingTimes(ctx, monthHorizon)
	if err != nil {
		return DashboardStats{}, err
	}
	signupTimes, err := s.repo.SignupTimes(ctx, monthHorizon)
	if err != nil {
		return DashboardStats{}, err
	}
	eventTimes, err := s.repo.EventTimes(ctx, monthHorizon)
	if err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		Totals:           totals,
		BookingsPerDay:   bucketByDay(bookingTimes, dayHorizon, dashboardDays),
		BookingsPerMonth: bucketByMonth(bookingTimes, monthHorizon, dashboardMonths),
		NewUsersPerMonth: bucketByMonth(signupTimes, monthHorizon, dashboardMonths),
		EventsPerMonth:   bucketByMonth(eventTimes, monthHorizon, dashboardMonths),
	}, nil
}

func bucketByDay(times []time.Time, from time.Time, days int) []SeriesPoint {
	counts := make(map[string]int, days)
	for _, t := range times {
		counts[t.UTC().Format("2006-01-02")]++
	}
	points := make([]SeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		bucket := from.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, SeriesPoint{Bucket: bucket, Count: counts[bucket]})
	}
	return points
}

func bucketByMonth(times []time.Time, from time.Time, months int) []SeriesPoint {
	counts := make(map[string]int, months)
	for _, t := range times {
		counts[t.UTC().Format("2006-01")]++
	}
	points := make([]SeriesPoint, 0, months)
	for i := 0; i < months; i++ {
		bucket := from.AddDate(0, i, 0).Format("2006-01")
		points = append(points, SeriesPoint{Bucket: bucket, Count: counts[bucket]})
	}
	return points
}
