// internal/services/keyword_service.go
package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/models"
	"github.com/podworks/pod-backend/internal/utils"
)

// KeywordService owns the keyword store: trend imports, design budget
// allocation and the batch planner that decides which keywords get the next
// round of generations.
type KeywordService struct {
	db     *gorm.DB
	config *config.Config
}

func NewKeywordService(db *gorm.DB, cfg *config.Config) *KeywordService {
	return &KeywordService{db: db, config: cfg}
}

type KeywordImport struct {
	Text         string  `json:"text" binding:"required" validate:"required,max=255"`
	Region       string  `json:"region" validate:"omitempty,len=2"`
	SearchVolume int     `json:"search_volume" validate:"min=0"`
	TrendScore   float64 `json:"trend_score" validate:"min=0,max=10"`
	Category     string  `json:"category" validate:"omitempty,max=100"`
}

type ImportResult struct {
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Keyword []models.Keyword `json:"keywords"`
}

// EstimateVolume guesses a search volume from keyword length when the import
// carries none. Short head terms dominate search demand.
func EstimateVolume(text string) int {
	words := len(strings.Fields(text))
	switch {
	case words <= 2:
		return 50000
	case words <= 3:
		return 30000
	default:
		return 15000
	}
}

// AllocationForVolume maps search volume onto a design budget. Bigger terms
// can absorb more designs before saturating.
func AllocationForVolume(volume int) int {
	switch {
	case volume >= 150000:
		return 250
	case volume >= 100000:
		return 200
	case volume >= 50000:
		return 150
	case volume >= 30000:
		return 100
	case volume >= 20000:
		return 75
	case volume >= 10000:
		return 50
	default:
		return 30
	}
}

// ImportKeywords upserts a batch of trend keywords. Existing (text, region)
// pairs are skipped rather than updated so manual tuning survives re-imports.
func (s *KeywordService) ImportKeywords(imports []KeywordImport) (*ImportResult, error) {
	if len(imports) == 0 {
		return nil, fmt.Errorf("%w: empty keyword batch", ErrInvalidArgument)
	}

	result := &ImportResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, imp := range imports {
			if err := utils.ValidateStruct(imp); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArgument, utils.GetValidationErrors(err))
			}

			text := strings.ToLower(strings.TrimSpace(imp.Text))
			if text == "" {
				return fmt.Errorf("%w: keyword text is required", ErrInvalidArgument)
			}

			region := imp.Region
			if region == "" {
				region = "GB"
			}

			var existing models.Keyword
			err := tx.Where("text = ? AND region = ?", text, region).First(&existing).Error
			if err == nil {
				result.Skipped++
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			volume := imp.SearchVolume
			if volume == 0 {
				volume = EstimateVolume(text)
			}

			trendScore := imp.TrendScore
			if trendScore == 0 {
				trendScore = 5.0
			}

			category := imp.Category
			if category == "" {
				category = "general"
			}

			keyword := models.Keyword{
				Text:             text,
				Region:           region,
				SearchVolume:     volume,
				TrendScore:       trendScore,
				Category:         category,
				DesignsAllocated: AllocationForVolume(volume),
				Status:           models.KeywordStatusActive,
			}

			if err := tx.Create(&keyword).Error; err != nil {
				return err
			}

			result.Created++
			result.Keyword = append(result.Keyword, keyword)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"created": result.Created,
		"skipped": result.Skipped,
	}).Info("Keyword import completed")

	return result, nil
}

// PlanAllocation splits a batch budget of n generations across candidate
// keywords proportionally to search volume. Each keyword is capped at
// min(styles per keyword, designs remaining). The proportional floor is
// computed first; leftover slots are then handed out one per keyword in
// descending volume order (insertion order breaks ties) until the budget or
// all caps are exhausted.
func (s *KeywordService) PlanAllocation(n int, candidates []models.Keyword) (map[uint]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: batch size must be non-negative", ErrInvalidArgument)
	}

	plan := make(map[uint]int, len(candidates))
	if n == 0 || len(candidates) == 0 {
		return plan, nil
	}

	caps := make([]int, len(candidates))
	var totalVolume int64
	for i, kw := range candidates {
		if kw.SearchVolume < 0 {
			return nil, fmt.Errorf("%w: negative search volume for keyword %d", ErrInvalidArgument, kw.ID)
		}

		limit := s.config.Generation.StylesPerKeyword
		if remaining := kw.Remaining(); remaining < limit {
			limit = remaining
		}
		caps[i] = limit
		totalVolume += int64(kw.SearchVolume)
	}

	assigned := make([]int, len(candidates))
	used := 0

	if totalVolume > 0 {
		for i, kw := range candidates {
			// 64-bit product keeps big budgets against six-figure volumes
			// from wrapping on 32-bit builds.
			share := int(int64(n) * int64(kw.SearchVolume) / totalVolume)
			if share > caps[i] {
				share = caps[i]
			}
			assigned[i] = share
			used += share
		}
	}

	// Leftover rounds, highest volume first, stable on insertion order.
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].SearchVolume > candidates[order[b]].SearchVolume
	})

	for used < n {
		progressed := false
		for _, i := range order {
			if used >= n {
				break
			}
			if assigned[i] < caps[i] {
				assigned[i]++
				used++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for i, kw := range candidates {
		if assigned[i] > 0 {
			plan[kw.ID] = assigned[i]
		}
	}
	return plan, nil
}

// SelectCandidates returns active keywords that still owe designs and meet
// the trend score threshold, hottest first.
func (s *KeywordService) SelectCandidates(limit int) ([]models.Keyword, error) {
	var keywords []models.Keyword
	err := s.db.
		Where("status = ?", models.KeywordStatusActive).
		Where("designs_generated < designs_allocated").
		Where("trend_score >= ?", s.config.Generation.MinTrendScore).
		Order("search_volume DESC, id ASC").
		Limit(limit).
		Find(&keywords).Error
	if err != nil {
		return nil, err
	}
	return keywords, nil
}

func (s *KeywordService) GetKeyword(id uint) (*models.Keyword, error) {
	var keyword models.Keyword
	if err := s.db.First(&keyword, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrKeywordNotFound
		}
		return nil, err
	}
	return &keyword, nil
}

func (s *KeywordService) ListKeywords(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var keywords []models.Keyword
	var total int64

	query := s.db.Model(&models.Keyword{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Region != "" {
		query = query.Where("region = ?", params.Region)
	}
	if params.Search != "" {
		query = query.Where("text ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	allowedSorts := []string{"created_at", "search_volume", "trend_score", "designs_generated", "text"}
	query = utils.ApplySort(query, params, allowedSorts)
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&keywords).Error; err != nil {
		return nil, err
	}

	result := utils.CreatePaginationResult(keywords, total, params)
	return &result, nil
}

// Deactivate pauses a keyword so the batch planner skips it. Keywords are
// never deleted; history hangs off them.
func (s *KeywordService) Deactivate(id uint) (*models.Keyword, error) {
	keyword, err := s.GetKeyword(id)
	if err != nil {
		return nil, err
	}

	if keyword.Status == models.KeywordStatusPaused {
		return keyword, nil
	}

	keyword.Status = models.KeywordStatusPaused
	if err := s.db.Model(keyword).Update("status", models.KeywordStatusPaused).Error; err != nil {
		return nil, err
	}
	return keyword, nil
}

// UpdateAllocation manually overrides a keyword's design budget.
func (s *KeywordService) UpdateAllocation(id uint, allocated int) (*models.Keyword, error) {
	if allocated < 0 {
		return nil, fmt.Errorf("%w: allocation must be non-negative", ErrInvalidArgument)
	}

	keyword, err := s.GetKeyword(id)
	if err != nil {
		return nil, err
	}

	keyword.DesignsAllocated = allocated
	updates := map[string]interface{}{"designs_allocated": allocated}
	if allocated > keyword.DesignsGenerated && keyword.Status == models.KeywordStatusExhausted {
		keyword.Status = models.KeywordStatusActive
		updates["status"] = models.KeywordStatusActive
	}

	if err := s.db.Model(keyword).Updates(updates).Error; err != nil {
		return nil, err
	}
	return keyword, nil
}

type KeywordStats struct {
	TotalKeywords     int64   `json:"total_keywords"`
	ActiveKeywords    int64   `json:"active_keywords"`
	ExhaustedCount    int64   `json:"exhausted_count"`
	TotalAllocated    int64   `json:"total_allocated"`
	TotalGenerated    int64   `json:"total_generated"`
	PotentialListings int64   `json:"potential_listings"`
	CompletionRate    float64 `json:"completion_rate"`
	AvgTrendScore     float64 `json:"avg_trend_score"`
	TopVolumeKeyword  string  `json:"top_volume_keyword"`
}

func (s *KeywordService) Stats() (*KeywordStats, error) {
	stats := &KeywordStats{}

	if err := s.db.Model(&models.Keyword{}).Count(&stats.TotalKeywords).Error; err != nil {
		return nil, err
	}
	s.db.Model(&models.Keyword{}).Where("status = ?", models.KeywordStatusActive).Count(&stats.ActiveKeywords)
	s.db.Model(&models.Keyword{}).Where("status = ?", models.KeywordStatusExhausted).Count(&stats.ExhaustedCount)

	var agg struct {
		Allocated int64
		Generated int64
		AvgScore  float64
	}
	s.db.Model(&models.Keyword{}).
		Select("COALESCE(SUM(designs_allocated),0) as allocated, COALESCE(SUM(designs_generated),0) as generated, COALESCE(AVG(trend_score),0) as avg_score").
		Scan(&agg)

	stats.TotalAllocated = agg.Allocated
	stats.TotalGenerated = agg.Generated
	stats.PotentialListings = agg.Allocated * int64(s.config.Generation.StylesPerKeyword)
	stats.AvgTrendScore = agg.AvgScore
	if agg.Allocated > 0 {
		stats.CompletionRate = float64(agg.Generated) / float64(agg.Allocated)
	}

	var top models.Keyword
	if err := s.db.Order("search_volume DESC").First(&top).Error; err == nil {
		stats.TopVolumeKeyword = top.Text
	}

	return stats, nil
}
