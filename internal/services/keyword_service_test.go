// internal/services/keyword_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podworks/pod-backend/internal/models"
)

func TestAllocationForVolume(t *testing.T) {
	cases := []struct {
		volume   int
		expected int
	}{
		{200000, 250},
		{150000, 250},
		{120000, 200},
		{60000, 150},
		{35000, 100},
		{25000, 75},
		{12000, 50},
		{5000, 30},
		{0, 30},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, AllocationForVolume(tc.volume), "volume=%d", tc.volume)
	}
}

func TestEstimateVolume(t *testing.T) {
	assert.Equal(t, 50000, EstimateVolume("wall art"))
	assert.Equal(t, 50000, EstimateVolume("posters"))
	assert.Equal(t, 30000, EstimateVolume("vintage wall art"))
	assert.Equal(t, 15000, EstimateVolume("large abstract canvas wall art"))
}

func TestPlanAllocationProportionalWithCaps(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	candidates := []models.Keyword{
		{BaseModel: models.BaseModel{ID: 1}, SearchVolume: 100, DesignsAllocated: 100},
		{BaseModel: models.BaseModel{ID: 2}, SearchVolume: 50, DesignsAllocated: 100},
		{BaseModel: models.BaseModel{ID: 3}, SearchVolume: 25, DesignsAllocated: 100},
	}

	plan, err := svc.PlanAllocation(35, candidates)
	require.NoError(t, err)

	// Every keyword saturates at the per-keyword style cap.
	assert.Equal(t, 8, plan[1])
	assert.Equal(t, 8, plan[2])
	assert.Equal(t, 8, plan[3])
}

func TestPlanAllocationLeftoverFavorsHigherVolume(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	candidates := []models.Keyword{
		{BaseModel: models.BaseModel{ID: 1}, SearchVolume: 60, DesignsAllocated: 100},
		{BaseModel: models.BaseModel{ID: 2}, SearchVolume: 30, DesignsAllocated: 100},
		{BaseModel: models.BaseModel{ID: 3}, SearchVolume: 10, DesignsAllocated: 100},
	}

	plan, err := svc.PlanAllocation(5, candidates)
	require.NoError(t, err)

	// Floors are 3/1/0; the two leftover slots go to the largest volumes.
	assert.Equal(t, 4, plan[1])
	assert.Equal(t, 2, plan[2])
	assert.Equal(t, 0, plan[3])

	total := 0
	for _, n := range plan {
		total += n
	}
	assert.Equal(t, 5, total)
}

func TestPlanAllocationRespectsRemainingBudget(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	candidates := []models.Keyword{
		{BaseModel: models.BaseModel{ID: 1}, SearchVolume: 100, DesignsAllocated: 10, DesignsGenerated: 8},
		{BaseModel: models.BaseModel{ID: 2}, SearchVolume: 100, DesignsAllocated: 100},
	}

	plan, err := svc.PlanAllocation(12, candidates)
	require.NoError(t, err)

	// Keyword 1 only has 2 designs left in its budget.
	assert.Equal(t, 2, plan[1])
	assert.Equal(t, 8, plan[2])
}

func TestPlanAllocationInvalidInput(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	_, err := svc.PlanAllocation(-1, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	candidates := []models.Keyword{
		{BaseModel: models.BaseModel{ID: 1}, SearchVolume: -5, DesignsAllocated: 100},
	}
	_, err = svc.PlanAllocation(10, candidates)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlanAllocationZeroBudgetAndNoCandidates(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	plan, err := svc.PlanAllocation(0, []models.Keyword{{BaseModel: models.BaseModel{ID: 1}, SearchVolume: 10}})
	require.NoError(t, err)
	assert.Empty(t, plan)

	plan, err = svc.PlanAllocation(10, nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestPlanAllocationZeroVolumeCandidates(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	candidates := []models.Keyword{
		{BaseModel: models.BaseModel{ID: 1}, SearchVolume: 0, DesignsAllocated: 100},
		{BaseModel: models.BaseModel{ID: 2}, SearchVolume: 0, DesignsAllocated: 100},
	}

	// With no volume signal the budget spreads round-robin.
	plan, err := svc.PlanAllocation(4, candidates)
	require.NoError(t, err)
	assert.Equal(t, 2, plan[1])
	assert.Equal(t, 2, plan[2])
}

func TestPlanAllocationLargeVolumes(t *testing.T) {
	svc := NewKeywordService(nil, newTestConfig())

	candidates := []models.Keyword{
		{BaseModel: models.BaseModel{ID: 1}, SearchVolume: 1_500_000_000, DesignsAllocated: 100},
		{BaseModel: models.BaseModel{ID: 2}, SearchVolume: 500_000_000, DesignsAllocated: 100},
	}

	// The proportional product exceeds 32-bit range; shares must stay exact.
	plan, err := svc.PlanAllocation(10, candidates)
	require.NoError(t, err)
	assert.Equal(t, 8, plan[1])
	assert.Equal(t, 2, plan[2])
}

func TestImportKeywords(t *testing.T) {
	db := newTestDB(t)
	svc := NewKeywordService(db, newTestConfig())

	result, err := svc.ImportKeywords([]KeywordImport{
		{Text: "Vintage Posters", SearchVolume: 60000},
		{Text: "abstract canvas art prints", TrendScore: 8.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)

	var first models.Keyword
	require.NoError(t, db.Where("text = ?", "vintage posters").First(&first).Error)
	assert.Equal(t, 60000, first.SearchVolume)
	assert.Equal(t, 150, first.DesignsAllocated)
	assert.Equal(t, "GB", first.Region)

	var second models.Keyword
	require.NoError(t, db.Where("text = ?", "abstract canvas art prints").First(&second).Error)
	assert.Equal(t, 15000, second.SearchVolume)
	assert.Equal(t, 50, second.DesignsAllocated)
	assert.Equal(t, 8.0, second.TrendScore)

	// Re-import skips existing pairs
	result, err = svc.ImportKeywords([]KeywordImport{{Text: "vintage posters"}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportKeywordsInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := NewKeywordService(db, newTestConfig())

	_, err := svc.ImportKeywords(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.ImportKeywords([]KeywordImport{{Text: "   "}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.ImportKeywords([]KeywordImport{{Text: "ok", SearchVolume: -1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSelectCandidates(t *testing.T) {
	db := newTestDB(t)
	svc := NewKeywordService(db, newTestConfig())

	big := seedKeyword(t, db, "big keyword", 90000, 100)
	small := seedKeyword(t, db, "small keyword", 5000, 30)

	// Exhausted and paused keywords are skipped
	exhausted := seedKeyword(t, db, "done keyword", 70000, 10)
	db.Model(exhausted).Updates(map[string]interface{}{"designs_generated": 10, "status": models.KeywordStatusExhausted})
	paused := seedKeyword(t, db, "paused keyword", 80000, 50)
	db.Model(paused).Update("status", models.KeywordStatusPaused)

	// Below the trend score threshold
	cold := seedKeyword(t, db, "cold keyword", 60000, 50)
	db.Model(cold).Update("trend_score", 3.0)

	candidates, err := svc.SelectCandidates(10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, big.ID, candidates[0].ID)
	assert.Equal(t, small.ID, candidates[1].ID)
}

func TestDeactivateKeyword(t *testing.T) {
	db := newTestDB(t)
	svc := NewKeywordService(db, newTestConfig())

	keyword := seedKeyword(t, db, "pausable", 10000, 50)

	updated, err := svc.Deactivate(keyword.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KeywordStatusPaused, updated.Status)

	// Idempotent
	updated, err = svc.Deactivate(keyword.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KeywordStatusPaused, updated.Status)

	_, err = svc.Deactivate(99999)
	assert.ErrorIs(t, err, ErrKeywordNotFound)
}

func TestUpdateAllocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewKeywordService(db, newTestConfig())

	keyword := seedKeyword(t, db, "budgeted", 10000, 50)
	db.Model(keyword).Updates(map[string]interface{}{"designs_generated": 50, "status": models.KeywordStatusExhausted})

	// Raising the budget reactivates an exhausted keyword
	updated, err := svc.UpdateAllocation(keyword.ID, 80)
	require.NoError(t, err)
	assert.Equal(t, 80, updated.DesignsAllocated)
	assert.Equal(t, models.KeywordStatusActive, updated.Status)

	_, err = svc.UpdateAllocation(keyword.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
