package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period selects the grouping granularity of a sales report
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// IsValid checks if the period is known
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Totals are the headline dashboard numbers. TotalSales sums the orders
// that count toward sales (shipped and delivered).
type Totals struct {
	Users      int64
	Orders     int64
	Products   int64
	TotalSales decimal.Decimal
}

// MonthlySeries is a 12-slot array indexed by month-1 for a single year
type MonthlySeries struct {
	Year   int
	Counts [12]int64
	Sales  [12]decimal.Decimal
}

// SalesRow is one bucket of a grouped sales report
type SalesRow struct {
	Bucket     time.Time
	OrderCount int64
	Total      decimal.Decimal
}

// Repository provides the read-side aggregate queries behind the admin
// dashboard and sales reports.
type Repository interface {
	// Totals returns the headline dashboard numbers
	Totals(ctx context.Context) (*Totals, error)

	// MonthlySeries returns per-month user signups and sales for a year
	MonthlySeries(ctx context.Context, year int) (*MonthlySeries, error)

	// SalesByPeriod returns sales rows bucketed by the given period,
	// oldest bucket first
	SalesByPeriod(ctx context.Context, period Period) ([]SalesRow, error)

	// Years returns the distinct years that have orders or signups,
	// newest first, for the dashboard year picker
	Years(ctx context.Context) ([]int, error)
}
