// internal/services/analytics_service.go
package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podworks/pod-backend/internal/cache"
	"github.com/podworks/pod-backend/internal/models"
)

const (
	dashboardCacheKey = "analytics:dashboard"
	dashboardCacheTTL = 5 * time.Minute
)

// AnalyticsService builds the operator dashboard numbers: daily rollups from
// the order stream plus pipeline funnel stats. The dashboard summary is
// cached briefly; everything else hits the database.
type AnalyticsService struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewAnalyticsService(db *gorm.DB, cacheClient *cache.Client) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cacheClient}
}

// RollupDay aggregates orders for one calendar day into analytics_daily rows.
// Safe to re-run: rows upsert on (product_id, date).
func (s *AnalyticsService) RollupDay(day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var rows []struct {
		ProductID uint
		Orders    int
		Revenue   float64
		Profit    float64
	}

	err := s.db.Model(&models.Order{}).
		Select("product_id, COUNT(*) as orders, COALESCE(SUM(order_value),0) as revenue, COALESCE(SUM(profit),0) as profit").
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Where("status != ?", models.OrderStatusCancelled).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		entry := models.AnalyticsDaily{
			ProductID: row.ProductID,
			Date:      dayStart,
			Orders:    row.Orders,
			Revenue:   row.Revenue,
			Profit:    row.Profit,
		}

		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"orders", "revenue", "profit", "updated_at"}),
		}).Create(&entry).Error
		if err != nil {
			return 0, err
		}
	}

	s.cache.Delete(context.Background(), dashboardCacheKey)

	logrus.WithFields(logrus.Fields{
		"date":     dayStart.Format("2006-01-02"),
		"products": len(rows),
	}).Info("Analytics rollup completed")

	return len(rows), nil
}

// RollupYesterday is the nightly job entry point.
func (s *AnalyticsService) RollupYesterday() (int, error) {
	return s.RollupDay(time.Now().AddDate(0, 0, -1))
}

type DashboardSummary struct {
	TotalKeywords   int64   `json:"total_keywords"`
	TotalArtworks   int64   `json:"total_artworks"`
	TotalProducts   int64   `json:"total_products"`
	PendingReview   int64   `json:"pending_review"`
	ActiveListings  int64   `json:"active_listings"`
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	GenerationSpend float64 `json:"generation_spend"`
	ApprovalRate    float64 `json:"approval_rate"`
}

// Dashboard returns the headline numbers, cached for a few minutes.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary
	if s.cache.Get(ctx, dashboardCacheKey, &summary) {
		return &summary, nil
	}

	s.db.Model(&models.Keyword{}).Count(&summary.TotalKeywords)
	s.db.Model(&models.Artwork{}).Count(&summary.TotalArtworks)
	s.db.Model(&models.Product{}).Count(&summary.TotalProducts)
	s.db.Model(&models.Product{}).Where("status = ?", models.ProductStatusPendingApproval).Count(&summary.PendingReview)
	s.db.Model(&models.PlatformListing{}).Where("status = ?", models.ListingStatusActive).Count(&summary.ActiveListings)
	s.db.Model(&models.Order{}).Count(&summary.TotalOrders)

	var revenue struct {
		Revenue float64
		Profit  float64
	}
	s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(order_value),0) as revenue, COALESCE(SUM(profit),0) as profit").
		Where("status != ?", models.OrderStatusCancelled).
		Scan(&revenue)
	summary.TotalRevenue = revenue.Revenue
	summary.TotalProfit = revenue.Profit

	var spend struct{ Total float64 }
	s.db.Model(&models.Artwork{}).Select("COALESCE(SUM(cost),0) as total").Scan(&spend)
	summary.GenerationSpend = spend.Total

	var approvals struct {
		Approved int64
		Rejected int64
	}
	s.db.Model(&models.ProductFeedback{}).
		Select("SUM(CASE WHEN action = 'approved' THEN 1 ELSE 0 END) as approved, "+
			"SUM(CASE WHEN action = 'rejected' THEN 1 ELSE 0 END) as rejected").
		Scan(&approvals)
	if total := approvals.Approved + approvals.Rejected; total > 0 {
		summary.ApprovalRate = float64(approvals.Approved) / float64(total)
	}

	s.cache.Set(ctx, dashboardCacheKey, &summary, dashboardCacheTTL)
	return &summary, nil
}

type DailySeries struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Series returns aggregated daily figures for the last n days.
func (s *AnalyticsService) Series(days int) ([]DailySeries, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		Date    time.Time
		Orders  int
		Revenue float64
		Profit  float64
	}

	err := s.db.Model(&models.AnalyticsDaily{}).
		Select("date, SUM(orders) as orders, SUM(revenue) as revenue, SUM(profit) as profit").
		Where("date >= ?", since).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]DailySeries, 0, len(rows))
	for _, row := range rows {
		series = append(series, DailySeries{
			Date:    row.Date.Format("2006-01-02"),
			Orders:  row.Orders,
			Revenue: row.Revenue,
			Profit:  row.Profit,
		})
	}
	return series, nil
}

type ProductPerformance struct {
	ProductID uint    `json:"product_id"`
	SKU       string  `json:"sku"`
	Title     string  `json:"title"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
}

// TopProducts ranks products by rolled-up revenue.
func (s *AnalyticsService) TopProducts(limit int) ([]ProductPerformance, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []ProductPerformance
	err := s.db.Model(&models.AnalyticsDaily{}).
		Select("analytics_dailies.product_id, products.sku, products.title, "+
			"SUM(analytics_dailies.orders) as orders, SUM(analytics_dailies.revenue) as revenue, SUM(analytics_dailies.profit) as profit").
		Joins("JOIN products ON products.id = analytics_dailies.product_id").
		Group("analytics_dailies.product_id, products.sku, products.title").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
