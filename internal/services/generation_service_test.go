// internal/services/generation_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/models"
)

type stubGenerator struct {
	imageURL string
	fail     bool
	calls    int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, style string) (*GeneratedImage, error) {
	s.calls++
	if s.fail {
		return nil, ErrUpstream
	}
	return &GeneratedImage{
		ImageURL: s.imageURL,
		Model:    "stub-model",
		Cost:     0.01,
	}, nil
}

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake png bytes"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newGenerationService(t *testing.T, db *gorm.DB, generator ImageGenerator) *GenerationService {
	t.Helper()
	cfg := newTestConfig()
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)
	keywordService := NewKeywordService(db, cfg)
	return NewGenerationService(db, cfg, generator, storage, keywordService)
}

func TestCalculatePrice(t *testing.T) {
	assert.Equal(t, 29.99, CalculatePrice("12x16", "single"))
	assert.Equal(t, 39.99, CalculatePrice("16x20", "single"))
	assert.Equal(t, 49.99, CalculatePrice("18x24", "single"))
	assert.Equal(t, 59.99, CalculatePrice("20x30", "single"))
	assert.Equal(t, 79.99, CalculatePrice("24x36", "single"))

	assert.InDelta(t, 49.99*1.8, CalculatePrice("18x24", "diptych"), 0.001)
	assert.InDelta(t, 49.99*2.5, CalculatePrice("18x24", "triptych"), 0.001)

	// Unknown inputs fall back to the default tier
	assert.Equal(t, 49.99, CalculatePrice("99x99", "single"))
	assert.Equal(t, 49.99, CalculatePrice("18x24", "pentaptych"))
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU()
	assert.True(t, strings.HasPrefix(sku, "POD-"), sku)
	assert.Len(t, sku, len("POD-2026-")+8)
	assert.NotEqual(t, sku, GenerateSKU())
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("vintage posters", "typography")
	assert.Contains(t, prompt, "vintage posters")
	assert.Contains(t, prompt, "lettering")
	assert.Contains(t, prompt, "canvas print")

	// Unknown style still yields a usable prompt
	fallback := BuildPrompt("vintage posters", "holographic")
	assert.Contains(t, fallback, "vintage posters")
}

func TestStyleForIndex(t *testing.T) {
	assert.Equal(t, "minimalist", StyleForIndex(0))
	assert.Equal(t, "abstract", StyleForIndex(1))
	assert.Equal(t, "modern", StyleForIndex(7))

	// Rotation wraps
	assert.Equal(t, "minimalist", StyleForIndex(8))
	assert.Equal(t, "abstract", StyleForIndex(9))
}

func TestGenerateForKeyword(t *testing.T) {
	db := newTestDB(t)
	ts := newImageServer(t)
	generator := &stubGenerator{imageURL: ts.URL + "/img.png"}
	svc := newGenerationService(t, db, generator)

	keyword := seedKeyword(t, db, "mountain landscape", 30000, 10)

	outcomes, err := svc.GenerateForKeyword(context.Background(), keyword.ID, 3)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, 3, generator.calls)

	// Styles rotate from the start of the set
	assert.Equal(t, "minimalist", outcomes[0].Artwork.Style)
	assert.Equal(t, "abstract", outcomes[1].Artwork.Style)
	assert.Equal(t, "vintage", outcomes[2].Artwork.Style)

	// Products are assembled straight into the review queue
	for i, outcome := range outcomes {
		assert.Equal(t, models.ProductStatusPendingApproval, outcome.Product.Status)
		assert.Equal(t, outcome.Artwork.ID, outcome.Product.ArtworkID)
		assert.Equal(t, i+1, outcome.Product.DesignNumber)
		assert.Equal(t, 49.99, outcome.Product.Price)
	}

	var updated models.Keyword
	require.NoError(t, db.First(&updated, keyword.ID).Error)
	assert.Equal(t, 3, updated.DesignsGenerated)
	assert.NotNil(t, updated.LastGeneratedAt)
	assert.Equal(t, models.KeywordStatusActive, updated.Status)
}

func TestGenerateForKeywordExhaustsBudget(t *testing.T) {
	db := newTestDB(t)
	ts := newImageServer(t)
	svc := newGenerationService(t, db, &stubGenerator{imageURL: ts.URL + "/img.png"})

	keyword := seedKeyword(t, db, "small budget", 30000, 2)

	// Requested count is trimmed to the remaining budget
	outcomes, err := svc.GenerateForKeyword(context.Background(), keyword.ID, 5)
	require.NoError(t, err)
	assert.Len(t, outcomes, 2)

	var updated models.Keyword
	require.NoError(t, db.First(&updated, keyword.ID).Error)
	assert.Equal(t, models.KeywordStatusExhausted, updated.Status)

	// Nothing left to generate
	_, err = svc.GenerateForKeyword(context.Background(), keyword.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerateForKeywordErrors(t *testing.T) {
	db := newTestDB(t)
	ts := newImageServer(t)
	svc := newGenerationService(t, db, &stubGenerator{imageURL: ts.URL + "/img.png"})

	_, err := svc.GenerateForKeyword(context.Background(), 99999, 1)
	assert.ErrorIs(t, err, ErrKeywordNotFound)

	keyword := seedKeyword(t, db, "paused keyword", 30000, 10)
	db.Model(keyword).Update("status", models.KeywordStatusPaused)
	_, err = svc.GenerateForKeyword(context.Background(), keyword.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	active := seedKeyword(t, db, "active keyword", 30000, 10)
	_, err = svc.GenerateForKeyword(context.Background(), active.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerateForKeywordAllUpstreamFailures(t *testing.T) {
	db := newTestDB(t)
	svc := newGenerationService(t, db, &stubGenerator{fail: true})

	keyword := seedKeyword(t, db, "doomed keyword", 30000, 10)

	_, err := svc.GenerateForKeyword(context.Background(), keyword.ID, 2)
	assert.ErrorIs(t, err, ErrUpstream)

	// Failed generations do not consume budget
	var updated models.Keyword
	require.NoError(t, db.First(&updated, keyword.ID).Error)
	assert.Equal(t, 0, updated.DesignsGenerated)
}

func TestBatchGenerate(t *testing.T) {
	db := newTestDB(t)
	ts := newImageServer(t)
	generator := &stubGenerator{imageURL: ts.URL + "/img.png"}
	svc := newGenerationService(t, db, generator)

	seedKeyword(t, db, "big volume", 90000, 100)
	seedKeyword(t, db, "small volume", 10000, 100)

	result, err := svc.BatchGenerate(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Planned)
	assert.Equal(t, 6, result.Generated)
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, result.Outcomes, 6)
}

func TestModelForStyle(t *testing.T) {
	cfg := newTestConfig()
	svc := NewArtGenService(cfg)

	model, cost := svc.ModelForStyle("typography")
	assert.Equal(t, "ideogram-ai/ideogram-v3-turbo", model)
	assert.Equal(t, 0.05, cost)

	model, cost = svc.ModelForStyle("watercolor")
	assert.Equal(t, "black-forest-labs/flux-dev", model)
	assert.Equal(t, 0.03, cost)

	model, cost = svc.ModelForStyle("unknown-style")
	assert.Equal(t, "black-forest-labs/flux-1.1-pro", model)
	assert.Equal(t, 0.04, cost)

	// Testing mode routes everything to the cheap model
	cfg.Replicate.TestingMode = true
	model, cost = svc.ModelForStyle("typography")
	assert.Equal(t, "black-forest-labs/flux-schnell", model)
	assert.Equal(t, 0.003, cost)
}
