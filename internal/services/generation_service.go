// internal/services/generation_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/metrics"
	"github.com/podworks/pod-backend/internal/models"
)

// artStyles is the rotation used when generating a batch for a keyword. The
// order matters: style index is derived from how many designs the keyword
// already has, so consecutive batches cycle through the whole set.
var artStyles = []string{
	"minimalist",
	"abstract",
	"vintage",
	"typography",
	"watercolor",
	"geometric",
	"botanical",
	"modern",
}

// styleGuidance is appended to the keyword to steer each model.
var styleGuidance = map[string]string{
	"minimalist": "clean minimalist design, simple shapes, lots of negative space, muted palette",
	"abstract":   "abstract expressionist composition, bold organic forms, layered textures",
	"vintage":    "vintage retro poster style, aged paper texture, classic mid-century palette",
	"typography": "elegant typographic poster, striking lettering as the central element",
	"watercolor": "soft watercolor painting, delicate washes, organic bleeding edges",
	"geometric":  "precise geometric pattern, symmetry, flat modern color blocking",
	"botanical":  "detailed botanical illustration, scientific drawing style, fine linework",
	"modern":     "contemporary modern art style, clean composition, gallery quality",
}

// basePrices keys canvas dimensions to retail price for a single panel.
var basePrices = map[string]float64{
	"12x16": 29.99,
	"16x20": 39.99,
	"18x24": 49.99,
	"20x30": 59.99,
	"24x36": 79.99,
}

// formatMultipliers scale multi-panel formats.
var formatMultipliers = map[string]float64{
	"single":   1.0,
	"diptych":  1.8,
	"triptych": 2.5,
}

const (
	defaultDimensions = "18x24"
	defaultFormat     = "single"
)

// GenerationService drives the artwork pipeline end to end: prompt building,
// image generation, permanent storage and product assembly. Assembled
// products land in pending_approval awaiting operator review.
type GenerationService struct {
	db             *gorm.DB
	config         *config.Config
	generator      ImageGenerator
	storage        *StorageService
	keywordService *KeywordService
}

func NewGenerationService(db *gorm.DB, cfg *config.Config, generator ImageGenerator, storage *StorageService, keywordService *KeywordService) *GenerationService {
	return &GenerationService{
		db:             db,
		config:         cfg,
		generator:      generator,
		storage:        storage,
		keywordService: keywordService,
	}
}

// BuildPrompt composes the generation prompt for a keyword and style.
func BuildPrompt(keywordText, style string) string {
	guidance, ok := styleGuidance[style]
	if !ok {
		guidance = "high quality wall art design"
	}
	return fmt.Sprintf("%s, %s, suitable for canvas print, no watermark, no text artifacts", keywordText, guidance)
}

// StyleForIndex returns the rotation style for the nth design of a keyword.
func StyleForIndex(n int) string {
	if n < 0 {
		n = 0
	}
	return artStyles[n%len(artStyles)]
}

// CalculatePrice returns the retail price for a dimension/format pair.
// Unknown dimensions fall back to the 18x24 tier.
func CalculatePrice(dimensions, format string) float64 {
	base, ok := basePrices[dimensions]
	if !ok {
		base = basePrices[defaultDimensions]
	}
	multiplier, ok := formatMultipliers[format]
	if !ok {
		multiplier = 1.0
	}
	return base * multiplier
}

// GenerateSKU mints a unique product SKU.
func GenerateSKU() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("POD-%d-%s", time.Now().Year(), short)
}

type GenerationOutcome struct {
	Artwork *models.Artwork `json:"artwork"`
	Product *models.Product `json:"product"`
}

// GenerateForKeyword runs count generations for one keyword, rotating styles.
// Partial failure is tolerated: each design is committed independently and
// failures are counted but do not abort the batch.
func (s *GenerationService) GenerateForKeyword(ctx context.Context, keywordID uint, count int) ([]GenerationOutcome, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", ErrInvalidArgument)
	}

	keyword, err := s.keywordService.GetKeyword(keywordID)
	if err != nil {
		return nil, err
	}
	if keyword.Status != models.KeywordStatusActive {
		return nil, fmt.Errorf("%w: keyword %d is %s", ErrInvalidArgument, keywordID, keyword.Status)
	}

	if remaining := keyword.Remaining(); count > remaining {
		count = remaining
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: keyword %d has no designs remaining", ErrInvalidArgument, keywordID)
	}

	var outcomes []GenerationOutcome
	for i := 0; i < count; i++ {
		style := StyleForIndex(keyword.DesignsGenerated + i)

		outcome, err := s.generateOne(ctx, keyword, style, keyword.DesignsGenerated+i+1)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"keyword": keyword.Text,
				"style":   style,
			}).Error("Design generation failed")
			metrics.ArtworkFailedTotal.WithLabelValues("generation_error").Inc()
			continue
		}
		outcomes = append(outcomes, *outcome)
	}

	if len(outcomes) > 0 {
		now := time.Now()
		updates := map[string]interface{}{
			"designs_generated": gorm.Expr("designs_generated + ?", len(outcomes)),
			"last_generated_at": now,
		}
		if err := s.db.Model(&models.Keyword{}).Where("id = ?", keyword.ID).Updates(updates).Error; err != nil {
			return outcomes, err
		}

		// Flip to exhausted once the budget is consumed
		s.db.Model(&models.Keyword{}).
			Where("id = ? AND designs_generated >= designs_allocated", keyword.ID).
			Update("status", models.KeywordStatusExhausted)
	}

	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: all %d generations failed", ErrUpstream, count)
	}
	return outcomes, nil
}

func (s *GenerationService) generateOne(ctx context.Context, keyword *models.Keyword, style string, designNumber int) (*GenerationOutcome, error) {
	prompt := BuildPrompt(keyword.Text, style)

	image, err := s.generator.Generate(ctx, prompt, style)
	if err != nil {
		return nil, err
	}

	asset, err := s.storage.UploadFromURL(image.ImageURL, "artwork")
	if err != nil {
		return nil, fmt.Errorf("failed to store artwork: %w", err)
	}

	artwork := models.Artwork{
		KeywordID:  keyword.ID,
		Prompt:     prompt,
		Provider:   image.Model,
		Style:      style,
		ImageURL:   asset.URL,
		StorageKey: asset.Key,
		Cost:       image.Cost,
		Status:     models.ArtworkStatusReady,
	}

	product := models.Product{
		SKU:          GenerateSKU(),
		Title:        buildProductTitle(keyword.Text, style),
		Description:  buildProductDescription(keyword.Text, style),
		Price:        CalculatePrice(defaultDimensions, defaultFormat),
		Status:       models.ProductStatusPendingApproval,
		Category:     keyword.Category,
		Tags:         buildProductTags(keyword.Text, style),
		CanvasFormat: defaultFormat,
		Dimensions:   defaultDimensions,
		DesignNumber: designNumber,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&artwork).Error; err != nil {
			return err
		}
		product.ArtworkID = artwork.ID
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.ArtworkGeneratedTotal.WithLabelValues(style, image.Model).Inc()
	metrics.GenerationCostDollars.Add(image.Cost)
	metrics.ProductsAssembledTotal.Inc()

	logrus.WithFields(logrus.Fields{
		"keyword": keyword.Text,
		"style":   style,
		"sku":     product.SKU,
		"cost":    image.Cost,
	}).Info("Design generated and assembled")

	return &GenerationOutcome{Artwork: &artwork, Product: &product}, nil
}

type BatchResult struct {
	Planned   int                 `json:"planned"`
	Generated int                 `json:"generated"`
	Failed    int                 `json:"failed"`
	Outcomes  []GenerationOutcome `json:"outcomes,omitempty"`
}

// BatchGenerate plans an allocation over the current candidate keywords and
// executes it. The batch size defaults to the configured limit.
func (s *GenerationService) BatchGenerate(ctx context.Context, batchSize int) (*BatchResult, error) {
	if batchSize <= 0 {
		batchSize = s.config.Generation.BatchLimit
	}

	candidates, err := s.keywordService.SelectCandidates(50)
	if err != nil {
		return nil, err
	}

	plan, err := s.keywordService.PlanAllocation(batchSize, candidates)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, count := range plan {
		result.Planned += count
	}

	// Execute in candidate order so high volume keywords go first.
	for _, kw := range candidates {
		count, ok := plan[kw.ID]
		if !ok {
			continue
		}

		outcomes, err := s.GenerateForKeyword(ctx, kw.ID, count)
		if err != nil {
			logrus.WithError(err).WithField("keyword", kw.Text).Warn("Batch keyword generation failed")
		}
		result.Generated += len(outcomes)
		result.Failed += count - len(outcomes)
		result.Outcomes = append(result.Outcomes, outcomes...)
	}

	logrus.WithFields(logrus.Fields{
		"planned":   result.Planned,
		"generated": result.Generated,
		"failed":    result.Failed,
	}).Info("Batch generation completed")

	return result, nil
}

type GenerationStatus struct {
	TotalArtworks  int64   `json:"total_artworks"`
	ReadyArtworks  int64   `json:"ready_artworks"`
	FailedArtworks int64   `json:"failed_artworks"`
	TotalSpend     float64 `json:"total_spend"`
	ActiveKeywords int64   `json:"active_keywords"`
	PendingDesigns int64   `json:"pending_designs"`
	TestingMode    bool    `json:"testing_mode"`
}

// Status summarizes the state of the generation pipeline.
func (s *GenerationService) Status() (*GenerationStatus, error) {
	status := &GenerationStatus{TestingMode: s.config.Replicate.TestingMode}

	if err := s.db.Model(&models.Artwork{}).Count(&status.TotalArtworks).Error; err != nil {
		return nil, err
	}
	s.db.Model(&models.Artwork{}).Where("status = ?", models.ArtworkStatusReady).Count(&status.ReadyArtworks)
	s.db.Model(&models.Artwork{}).Where("status = ?", models.ArtworkStatusFailed).Count(&status.FailedArtworks)

	var spend struct{ Total float64 }
	s.db.Model(&models.Artwork{}).Select("COALESCE(SUM(cost),0) as total").Scan(&spend)
	status.TotalSpend = spend.Total

	s.db.Model(&models.Keyword{}).Where("status = ?", models.KeywordStatusActive).Count(&status.ActiveKeywords)

	var pending struct{ Total int64 }
	s.db.Model(&models.Keyword{}).
		Select("COALESCE(SUM(designs_allocated - designs_generated),0) as total").
		Where("status = ?", models.KeywordStatusActive).
		Scan(&pending)
	status.PendingDesigns = pending.Total

	return status, nil
}

func buildProductTitle(keywordText, style string) string {
	return fmt.Sprintf("%s %s Canvas Wall Art", titleCase(keywordText), titleCase(style))
}

func buildProductDescription(keywordText, style string) string {
	return fmt.Sprintf(
		"Premium %s canvas print inspired by %s. Printed on museum-grade canvas with fade-resistant inks, gallery wrapped and ready to hang.",
		style, keywordText)
}

func buildProductTags(keywordText, style string) []string {
	tags := []string{style, "canvas", "wall art"}
	for _, word := range strings.Fields(keywordText) {
		if len(word) > 2 {
			tags = append(tags, word)
		}
	}
	return tags
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
