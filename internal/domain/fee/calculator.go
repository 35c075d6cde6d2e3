package fee

import (
	"time"

	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvalidRate = errs.Sentinel("invalid tariff rate", errs.ErrValidation)

const hoursPerDay = 24

type Calculator interface {
	Compute(class vehicle.Class, entryAt, exitAt time.Time) (decimal.Decimal, error)
}

type RateTable struct {
	hourly      map[vehicle.Class]decimal.Decimal
	defaultRate decimal.Decimal
	// zero means uncapped
	dailyCap decimal.Decimal
}

// NewRateTable parses class rates, a fallback rate and an optional daily cap.
// An empty cap string disables capping.
func NewRateTable(rates map[string]string, defaultRate, dailyCap string) (*RateTable, error) {
	rt := &RateTable{hourly: make(map[vehicle.Class]decimal.Decimal, len(rates))}
	for k, v := range rates {
		class, err := vehicle.NewClass(k)
		if err != nil {
			return nil, err
		}
		rate, err := parseRate(v)
		if err != nil {
			return nil, errs.Wrapf(err, "rate for %s", class)
		}
		rt.hourly[class] = rate
	}

	def, err := parseRate(defaultRate)
	if err != nil {
		return nil, errs.Wrap(err, "default rate")
	}
	rt.defaultRate = def

	if dailyCap != "" {
		dc, err := parseRate(dailyCap)
		if err != nil {
			return nil, errs.Wrap(err, "daily cap")
		}
		rt.dailyCap = dc
	}
	return rt, nil
}

func parseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Wrapf(ErrInvalidRate, "%q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, errs.Wrapf(ErrInvalidRate, "%q is negative", s)
	}
	return d, nil
}

func (rt *RateTable) HourlyRate(class vehicle.Class) decimal.Decimal {
	if r, ok := rt.hourly[class]; ok {
		return r
	}
	return rt.defaultRate
}

func (rt *RateTable) Compute(class vehicle.Class, entryAt, exitAt time.Time) (decimal.Decimal, error) {
	hours, err := BillableHours(entryAt, exitAt)
	if err != nil {
		return decimal.Zero, err
	}
	rate := rt.HourlyRate(class)

	if !rt.dailyCap.IsPositive() {
		return rate.Mul(decimal.NewFromInt(hours)), nil
	}

	days := hours / hoursPerDay
	rest := hours % hoursPerDay
	fullDay := decimal.Min(rate.Mul(decimal.NewFromInt(hoursPerDay)), rt.dailyCap)
	partial := decimal.Min(rate.Mul(decimal.NewFromInt(rest)), rt.dailyCap)
	return fullDay.Mul(decimal.NewFromInt(days)).Add(partial), nil
}

// BillableHours rounds the stay up to whole hours with a one hour minimum.
func BillableHours(entryAt, exitAt time.Time) (int64, error) {
	if exitAt.Before(entryAt) {
		return 0, errs.Wrapf(session.ErrInvalidInterval, "entry %s exit %s",
			entryAt.Format(time.RFC3339), exitAt.Format(time.RFC3339))
	}
	d := exitAt.Sub(entryAt)
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}
