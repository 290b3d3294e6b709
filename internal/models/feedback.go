// internal/models/feedback.go
package models

// ProductFeedback is the append-only audit log of operator review decisions.
// Style, provider and keyword are denormalized from the artwork at write time
// so preference stats survive artwork cleanup. Rows are never mutated.
type ProductFeedback struct {
	BaseModel
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	Action    FeedbackAction `json:"action" gorm:"type:varchar(20);not null;index"`
	Reason    string         `json:"reason,omitempty" gorm:"type:text"`
	Style     string         `json:"style,omitempty" gorm:"size:50;index"`
	Provider  string         `json:"provider,omitempty" gorm:"size:100;index"`
	Keyword   string         `json:"keyword,omitempty" gorm:"size:255"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
