// internal/services/feedback_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podworks/pod-backend/internal/models"
)

func TestRecordFeedbackApprove(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	product := seedProduct(t, db, models.ProductStatusPendingApproval)

	result, err := svc.RecordFeedback(product.ID, "approve", "")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusApproved, result.Status)
	assert.True(t, result.Changed)

	// Audit row with denormalized artwork metadata
	var feedback models.ProductFeedback
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&feedback).Error)
	assert.Equal(t, models.FeedbackApproved, feedback.Action)
	assert.Equal(t, "minimalist", feedback.Style)
	assert.Equal(t, "black-forest-labs/flux-dev", feedback.Provider)
	assert.NotEmpty(t, feedback.Keyword)
}

func TestRecordFeedbackReject(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	product := seedProduct(t, db, models.ProductStatusPendingApproval)

	result, err := svc.RecordFeedback(product.ID, "rejected", "poor composition")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusRejected, result.Status)

	// The artwork is flagged deleted on the transition into rejected
	var artwork models.Artwork
	require.NoError(t, db.First(&artwork, product.ArtworkID).Error)
	assert.Equal(t, models.ArtworkStatusDeleted, artwork.Status)

	var feedback models.ProductFeedback
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&feedback).Error)
	assert.Equal(t, "poor composition", feedback.Reason)
}

func TestRecordFeedbackRejectIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	product := seedProduct(t, db, models.ProductStatusPendingApproval)

	_, err = svc.RecordFeedback(product.ID, "reject", "first")
	require.NoError(t, err)

	// Second reject of an already-rejected product is a no-op success
	result, err := svc.RecordFeedback(product.ID, "reject", "second")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusRejected, result.Status)
	assert.False(t, result.Changed)

	// Both decisions are in the audit log
	var count int64
	db.Model(&models.ProductFeedback{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestRecordFeedbackRejectedIsTerminal(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	// Approving an already-rejected product is a no-op success
	product := seedProduct(t, db, models.ProductStatusRejected)
	result, err := svc.RecordFeedback(product.ID, "approve", "")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusRejected, result.Status)
	assert.False(t, result.Changed)

	// The decision still lands in the audit log
	var count int64
	db.Model(&models.ProductFeedback{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordFeedbackInvalidTransition(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	// Draft products are not reviewable yet
	draft := seedProduct(t, db, models.ProductStatusDraft)
	_, err = svc.RecordFeedback(draft.ID, "approve", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecordFeedbackActivePulledByReject(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	product := seedProduct(t, db, models.ProductStatusActive)

	result, err := svc.RecordFeedback(product.ID, "reject", "copyright concern")
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusRejected, result.Status)
}

func TestRecordFeedbackErrors(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	product := seedProduct(t, db, models.ProductStatusPendingApproval)

	_, err = svc.RecordFeedback(product.ID, "maybe", "")
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = svc.RecordFeedback(99999, "approve", "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBulkFeedback(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	first := seedProduct(t, db, models.ProductStatusPendingApproval)
	second := seedProduct(t, db, models.ProductStatusPendingApproval)

	result, err := svc.BulkFeedback([]BulkFeedbackItem{
		{ProductID: first.ID, Action: "approve"},
		{ProductID: second.ID, Action: "reject", Reason: "off brand"},
		{ProductID: 99999, Action: "approve"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, uint(99999))
}

func TestFeedbackHistory(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	product := seedProduct(t, db, models.ProductStatusPendingApproval)
	_, err = svc.RecordFeedback(product.ID, "reject", "first pass")
	require.NoError(t, err)
	_, err = svc.RecordFeedback(product.ID, "reject", "second pass")
	require.NoError(t, err)

	history, err := svc.History(product.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second pass", history[0].Reason)

	_, err = svc.History(99999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPreferences(t *testing.T) {
	db := newTestDB(t)
	storage, err := NewStorageService(newTestConfig())
	require.NoError(t, err)
	svc := NewFeedbackService(db, storage)

	for i := 0; i < 3; i++ {
		product := seedProduct(t, db, models.ProductStatusPendingApproval)
		_, err = svc.RecordFeedback(product.ID, "approve", "")
		require.NoError(t, err)
	}
	rejected := seedProduct(t, db, models.ProductStatusPendingApproval)
	_, err = svc.RecordFeedback(rejected.ID, "reject", "")
	require.NoError(t, err)

	report, err := svc.Preferences()
	require.NoError(t, err)
	require.Len(t, report.Styles, 1)
	assert.Equal(t, "minimalist", report.Styles[0].Name)
	assert.Equal(t, int64(3), report.Styles[0].Approved)
	assert.Equal(t, int64(1), report.Styles[0].Rejected)
	assert.InDelta(t, 0.75, report.Styles[0].ApprovalRate, 0.001)
}
