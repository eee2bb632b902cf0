package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

// rollingWindow is the trailing window length for the personal trend
// smoothing. The window shrinks at the start of the series, so the first
// point is its own average.
const rollingWindow = 7

type trendService struct{}

// NewTrendService creates the time-bucketed trend aggregator.
func NewTrendService() TrendServiceInterface {
	return &trendService{}
}

func (s *trendService) Trend(dataset []models.Transaction, granularity models.Granularity) []models.TrendPoint {
	return bucketize(dataset, nil, granularity)
}

func (s *trendService) UserTrend(dataset []models.Transaction, userID int64, granularity models.Granularity) []models.UserTrendPoint {
	points := bucketize(dataset, &userID, granularity)

	series := make([]models.UserTrendPoint, len(points))
	sum := 0.0
	for i, p := range points {
		sum += p.GreenPercentage
		if i >= rollingWindow {
			sum -= points[i-rollingWindow].GreenPercentage
		}
		window := i + 1
		if window > rollingWindow {
			window = rollingWindow
		}
		series[i] = models.UserTrendPoint{
			TrendPoint:     p,
			RollingAverage: sum / float64(window),
		}
	}
	return series
}

type trendBucket struct {
	total  int64
	green  int64
	amount decimal.Decimal
}

func bucketize(dataset []models.Transaction, userID *int64, granularity models.Granularity) []models.TrendPoint {
	buckets := make(map[time.Time]*trendBucket)
	for i := range dataset {
		tx := &dataset[i]
		if userID != nil && tx.UserID != *userID {
			continue
		}

		period := periodStart(tx.Date, granularity)
		bucket, ok := buckets[period]
		if !ok {
			bucket = &trendBucket{amount: decimal.Zero}
			buckets[period] = bucket
		}
		bucket.total++
		if tx.IsGreen() {
			bucket.green++
		}
		bucket.amount = bucket.amount.Add(tx.Amount)
	}

	periods := make([]time.Time, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	points := make([]models.TrendPoint, 0, len(periods))
	for _, period := range periods {
		bucket := buckets[period]
		percentage := 0.0
		if bucket.total > 0 {
			percentage = float64(bucket.green) / float64(bucket.total) * 100
		}
		points = append(points, models.TrendPoint{
			PeriodStart:     period,
			GreenPercentage: percentage,
			TotalAmount:     bucket.amount,
		})
	}
	return points
}

// periodStart truncates a timestamp to the start of its containing day,
// ISO week (Monday) or calendar month.
func periodStart(t time.Time, granularity models.Granularity) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch granularity {
	case models.GranularityWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case models.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}
