// internal/services/feedback_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/metrics"
	"github.com/podworks/pod-backend/internal/models"
)

// FeedbackService applies operator review decisions to products and keeps the
// append-only feedback audit log that feeds preference analytics.
type FeedbackService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewFeedbackService(db *gorm.DB, storage *StorageService) *FeedbackService {
	return &FeedbackService{db: db, storage: storage}
}

type FeedbackResult struct {
	ProductID uint                 `json:"product_id"`
	Status    models.ProductStatus `json:"status"`
	Changed   bool                 `json:"changed"`
}

// RecordFeedback applies one review decision. Repeating a decision the
// product already reflects is an idempotent success: the audit row is still
// appended but the status does not move. The reject side effect of deleting
// the stored asset fires only on the transition into rejected, and its
// failure never fails the request.
func (s *FeedbackService) RecordFeedback(productID uint, rawAction, reason string) (*FeedbackResult, error) {
	action, ok := models.NormalizeFeedbackAction(rawAction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, rawAction)
	}

	var product models.Product
	err := s.db.Preload("Artwork").Preload("Artwork.Keyword").First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	target := action.TargetStatus()

	changed := false
	var deleteKey string

	err = s.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case product.Status == target:
			// Repeating the decision the product already reflects

		case product.Status == models.ProductStatusRejected:
			// Rejected is terminal: any further decision is recorded but
			// never moves the product and never re-fires the asset delete

		case !product.Status.CanTransitionTo(target):
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, product.Status, target)

		default:
			if err := tx.Model(&product).Update("status", target).Error; err != nil {
				return err
			}
			product.Status = target
			changed = true

			if target == models.ProductStatusRejected {
				deleteKey = product.Artwork.StorageKey
				if err := tx.Model(&models.Artwork{}).
					Where("id = ?", product.ArtworkID).
					Update("status", models.ArtworkStatusDeleted).Error; err != nil {
					return err
				}
			}
		}

		feedback := models.ProductFeedback{
			ProductID: product.ID,
			Action:    action,
			Reason:    reason,
			Style:     product.Artwork.Style,
			Provider:  product.Artwork.Provider,
			Keyword:   product.Artwork.Keyword.Text,
		}
		return tx.Create(&feedback).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.FeedbackTotal.WithLabelValues(string(action)).Inc()

	if deleteKey != "" {
		if err := s.storage.DeleteFile(deleteKey); err != nil {
			metrics.AssetDeletesFailedTotal.Inc()
			logrus.WithError(err).WithFields(logrus.Fields{
				"product_id": product.ID,
				"key":        deleteKey,
			}).Error("Failed to delete rejected artwork asset")
		}
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"action":     action,
		"status":     product.Status,
		"changed":    changed,
	}).Info("Feedback recorded")

	return &FeedbackResult{ProductID: product.ID, Status: product.Status, Changed: changed}, nil
}

type BulkFeedbackItem struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
	Reason    string `json:"reason"`
}

type BulkFeedbackResult struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Errors    map[uint]string   `json:"errors,omitempty"`
	Results   []*FeedbackResult `json:"results,omitempty"`
}

// BulkFeedback applies a batch of decisions independently. One bad item does
// not abort the rest; per-item errors are reported back keyed by product ID.
func (s *FeedbackService) BulkFeedback(items []BulkFeedbackItem) (*BulkFeedbackResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty feedback batch", ErrInvalidArgument)
	}

	result := &BulkFeedbackResult{Errors: map[uint]string{}}
	for _, item := range items {
		res, err := s.RecordFeedback(item.ProductID, item.Action, item.Reason)
		if err != nil {
			result.Failed++
			result.Errors[item.ProductID] = err.Error()
			continue
		}
		result.Succeeded++
		result.Results = append(result.Results, res)
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

type PreferenceBucket struct {
	Name         string  `json:"name"`
	Approved     int64   `json:"approved"`
	Rejected     int64   `json:"rejected"`
	Total        int64   `json:"total"`
	ApprovalRate float64 `json:"approval_rate"`
}

type PreferenceReport struct {
	Styles          []PreferenceBucket `json:"styles"`
	Providers       []PreferenceBucket `json:"providers"`
	Keywords        []PreferenceBucket `json:"keywords"`
	Recommendations []string           `json:"recommendations"`
}

// Preferences aggregates the audit log into approval rates per style,
// provider and keyword, with simple recommendations for the generation side.
func (s *FeedbackService) Preferences() (*PreferenceReport, error) {
	report := &PreferenceReport{}

	var err error
	if report.Styles, err = s.bucketize("style"); err != nil {
		return nil, err
	}
	if report.Providers, err = s.bucketize("provider"); err != nil {
		return nil, err
	}
	if report.Keywords, err = s.bucketize("keyword"); err != nil {
		return nil, err
	}

	for _, bucket := range report.Styles {
		if bucket.Total < 5 {
			continue
		}
		if bucket.ApprovalRate >= 0.8 {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Style %q is performing well (%.0f%% approval), consider allocating more designs to it", bucket.Name, bucket.ApprovalRate*100))
		} else if bucket.ApprovalRate <= 0.2 {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Style %q is underperforming (%.0f%% approval), consider removing it from the rotation", bucket.Name, bucket.ApprovalRate*100))
		}
	}

	return report, nil
}

func (s *FeedbackService) bucketize(column string) ([]PreferenceBucket, error) {
	var rows []struct {
		Name     string
		Approved int64
		Rejected int64
	}

	err := s.db.Model(&models.ProductFeedback{}).
		Select(column+" as name, "+
			"SUM(CASE WHEN action = 'approved' THEN 1 ELSE 0 END) as approved, "+
			"SUM(CASE WHEN action = 'rejected' THEN 1 ELSE 0 END) as rejected").
		Where(column + " != ''").
		Group(column).
		Order("approved DESC").
		Limit(25).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]PreferenceBucket, 0, len(rows))
	for _, row := range rows {
		bucket := PreferenceBucket{
			Name:     row.Name,
			Approved: row.Approved,
			Rejected: row.Rejected,
			Total:    row.Approved + row.Rejected,
		}
		if bucket.Total > 0 {
			bucket.ApprovalRate = float64(bucket.Approved) / float64(bucket.Total)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// History returns the audit trail for one product, newest first.
func (s *FeedbackService) History(productID uint) ([]models.ProductFeedback, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrProductNotFound
	}

	var feedback []models.ProductFeedback
	err := s.db.Where("product_id = ?", productID).Order("created_at DESC, id DESC").Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
