// Package report contains the application service behind the admin
// dashboard and sales reports.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onlineshop/backend/internal/domain/report"
	"github.com/onlineshop/backend/internal/domain/shared"
)

// DashboardResponse is the admin dashboard payload: headline totals plus
// the per-month signup and sales series for the selected year.
type DashboardResponse struct {
	Users          int64             `json:"users"`
	Orders         int64             `json:"orders"`
	Products       int64             `json:"products"`
	TotalSales     decimal.Decimal   `json:"total_sales"`
	Year           int               `json:"year"`
	MonthlyUsers   []int64           `json:"monthly_users"`
	MonthlySales   []decimal.Decimal `json:"monthly_sales"`
	AvailableYears []int             `json:"available_years"`
}

// SalesRowResponse is one bucket of a sales report
type SalesRowResponse struct {
	Bucket     time.Time       `json:"bucket"`
	OrderCount int64           `json:"order_count"`
	Total      decimal.Decimal `json:"total"`
}

// SalesReportResponse is a grouped sales report
type SalesReportResponse struct {
	Period string             `json:"period"`
	Rows   []SalesRowResponse `json:"rows"`
}

// Service assembles dashboard and report payloads from the read-side
// repository.
type Service struct {
	repo report.Repository
}

// NewService creates a new report Service
func NewService(repo report.Repository) *Service {
	return &Service{repo: repo}
}

// Dashboard returns the admin dashboard for the given year. Zero means
// the current year.
func (s *Service) Dashboard(ctx context.Context, year int) (*DashboardResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.repo.MonthlySeries(ctx, year)
	if err != nil {
		return nil, err
	}
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Users:          totals.Users,
		Orders:         totals.Orders,
		Products:       totals.Products,
		TotalSales:     totals.TotalSales,
		Year:           series.Year,
		MonthlyUsers:   series.Counts[:],
		MonthlySales:   series.Sales[:],
		AvailableYears: years,
	}, nil
}

// Sales returns the sales report grouped by the given period. An empty
// period defaults to daily.
func (s *Service) Sales(ctx context.Context, period string) (*SalesReportResponse, error) {
	p := report.Period(period)
	if period == "" {
		p = report.PeriodDaily
	}
	if !p.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period must be daily, weekly, or monthly")
	}

	rows, err := s.repo.SalesByPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	resp := &SalesReportResponse{
		Period: string(p),
		Rows:   make([]SalesRowResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, SalesRowResponse{
			Bucket:     row.Bucket,
			OrderCount: row.OrderCount,
			Total:      row.Total,
		})
	}
	return resp, nil
}
