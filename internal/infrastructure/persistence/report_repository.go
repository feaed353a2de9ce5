package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/onlineshop/backend/internal/domain/order"
	"github.com/onlineshop/backend/internal/domain/report"
)

// salesStatuses are the order statuses included in sales aggregates
var salesStatuses = []order.OrderStatus{order.OrderStatusShipped, order.OrderStatusDelivered}

// GormReportRepository implements report.Repository with raw aggregate
// queries over the orders, users and products tables.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Totals returns the headline dashboard numbers
func (r *GormReportRepository) Totals(ctx context.Context) (*report.Totals, error) {
	db := r.db.WithContext(ctx)
	totals := &report.Totals{TotalSales: decimal.Zero}

	if err := db.Table("users").Count(&totals.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Table("orders").Count(&totals.Orders).Error; err != nil {
		return nil, err
	}
	if err := db.Table("products").Count(&totals.Products).Error; err != nil {
		return nil, err
	}

	var sales struct {
		Total decimal.Decimal
	}
	if err := db.Table("orders").
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ?", salesStatuses).
		Scan(&sales).Error; err != nil {
		return nil, err
	}
	totals.TotalSales = sales.Total

	return totals, nil
}

// MonthlySeries returns per-month user signups and sales for a year
func (r *GormReportRepository) MonthlySeries(ctx context.Context, year int) (*report.MonthlySeries, error) {
	db := r.db.WithContext(ctx)
	series := &report.MonthlySeries{Year: year}
	for i := range series.Sales {
		series.Sales[i] = decimal.Zero
	}

	var signups []struct {
		Month int
		Count int64
	}
	if err := db.Table("users").
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Where("EXTRACT(YEAR FROM created_at) = ?", year).
		Group("month").
		Scan(&signups).Error; err != nil {
		return nil, err
	}
	for _, row := range signups {
		if row.Month >= 1 && row.Month <= 12 {
			series.Counts[row.Month-1] = row.Count
		}
	}

	var sales []struct {
		Month int
		Total decimal.Decimal
	}
	if err := db.Table("orders").
		Select("EXTRACT(MONTH FROM order_date)::int AS month, COALESCE(SUM(total_amount), 0) AS total").
		Where("EXTRACT(YEAR FROM order_date) = ? AND status IN ?", year, salesStatuses).
		Group("month").
		Scan(&sales).Error; err != nil {
		return nil, err
	}
	for _, row := range sales {
		if row.Month >= 1 && row.Month <= 12 {
			series.Sales[row.Month-1] = row.Total
		}
	}

	return series, nil
}

// SalesByPeriod returns sales rows bucketed by the given period,
// oldest bucket first
func (r *GormReportRepository) SalesByPeriod(ctx context.Context, period report.Period) ([]report.SalesRow, error) {
	var trunc string
	switch period {
	case report.PeriodDaily:
		trunc = "day"
	case report.PeriodWeekly:
		trunc = "week"
	case report.PeriodMonthly:
		trunc = "month"
	default:
		trunc = "day"
	}

	var rows []struct {
		Bucket     time.Time
		OrderCount int64
		Total      decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("orders").
		Select("DATE_TRUNC('"+trunc+"', order_date) AS bucket, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ?", salesStatuses).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.SalesRow, len(rows))
	for i, row := range rows {
		result[i] = report.SalesRow{
			Bucket:     row.Bucket,
			OrderCount: row.OrderCount,
			Total:      row.Total,
		}
	}
	return result, nil
}

// Years returns the distinct years that have orders or signups, newest first
func (r *GormReportRepository) Years(ctx context.Context) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT year FROM (
			SELECT EXTRACT(YEAR FROM order_date)::int AS year FROM orders
			UNION
			SELECT EXTRACT(YEAR FROM created_at)::int AS year FROM users
		) y
		ORDER BY year DESC`).
		Scan(&years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
