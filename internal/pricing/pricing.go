// Package pricing computes the price of a custom-period rental from the
// monthly price of a space.
package pricing

import (
	"errors"
	"math"
	"time"
)

// DaysPerMonth converts the listed monthly price into a daily rate.
const DaysPerMonth = 30

var ErrInvalidPeriod = errors.New("pricing: end date precedes start date")

// Days counts calendar days from start to end, both inclusive.
func Days(start, end time.Time) (int, error) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0, ErrInvalidPeriod
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

func DailyRate(monthly float64) float64 {
	return monthly / DaysPerMonth
}

// CustomPrice is days × daily rate, rounded to cents.
func CustomPrice(monthly float64, start, end time.Time) (float64, error) {
	days, err := Days(start, end)
	if err != nil {
		return 0, err
	}
	return round2(float64(days) * DailyRate(monthly)), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
