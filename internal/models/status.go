// internal/models/status.go
package models

// ProductStatus is the canonical product lifecycle enumeration. Legacy
// free-text status values from older schema revisions are folded into this
// set during migration (see database.migrateLegacyStatuses).
type ProductStatus string

const (
	ProductStatusDraft           ProductStatus = "draft"
	ProductStatusPendingApproval ProductStatus = "pending_approval"
	ProductStatusApproved        ProductStatus = "approved"
	ProductStatusActive          ProductStatus = "active"
	ProductStatusPaused          ProductStatus = "paused"
	ProductStatusArchived        ProductStatus = "archived"
	ProductStatusRejected        ProductStatus = "rejected"
)

// productTransitions is the full lifecycle graph. rejected and archived are
// terminal. Products awaiting review may sit in either pending_approval or
// active (listed products can still be pulled by a reject).
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductStatusDraft:           {ProductStatusPendingApproval},
	ProductStatusPendingApproval: {ProductStatusApproved, ProductStatusRejected},
	ProductStatusApproved:        {ProductStatusActive, ProductStatusRejected},
	ProductStatusActive:          {ProductStatusApproved, ProductStatusRejected, ProductStatusPaused, ProductStatusArchived},
	ProductStatusPaused:          {ProductStatusActive, ProductStatusArchived},
	ProductStatusArchived:        {},
	ProductStatusRejected:        {},
}

func (s ProductStatus) IsValid() bool {
	_, ok := productTransitions[s]
	return ok
}

func (s ProductStatus) IsTerminal() bool {
	return len(productTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the lifecycle permits moving from s to
// target. Same-state "transitions" are not permitted; callers treat them as
// idempotent no-ops instead.
func (s ProductStatus) CanTransitionTo(target ProductStatus) bool {
	for _, next := range productTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// FeedbackAction is the internal representation of an operator decision.
type FeedbackAction string

const (
	FeedbackApproved FeedbackAction = "approved"
	FeedbackRejected FeedbackAction = "rejected"
)

// NormalizeFeedbackAction maps the closed set of accepted request tokens to
// the internal action enumeration. "approve"/"reject" are legacy aliases kept
// for older dashboard builds; everything else is rejected at the API boundary.
func NormalizeFeedbackAction(raw string) (FeedbackAction, bool) {
	switch raw {
	case "approve", "approved":
		return FeedbackApproved, true
	case "reject", "rejected":
		return FeedbackRejected, true
	default:
		return "", false
	}
}

// TargetStatus returns the product status an action drives the product into.
func (a FeedbackAction) TargetStatus() ProductStatus {
	if a == FeedbackApproved {
		return ProductStatusApproved
	}
	return ProductStatusRejected
}
