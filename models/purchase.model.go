package models

import (
	"time"

	"gorm.io/datatypes"
)

// PurchaseStatus is the purchase lifecycle. Transitions are monotonic:
// PENDING may move to COMPLETED or FAILED, both of which are terminal.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseCompleted PurchaseStatus = "COMPLETED"
	PurchaseFailed    PurchaseStatus = "FAILED"
)

// Terminal reports whether no further status transition is permitted.
func (s PurchaseStatus) Terminal() bool {
	return s == PurchaseCompleted || s == PurchaseFailed
}

// Purchase records a buyer's intent to buy a course. Amount is computed once
// at creation from the course price and discount and never recomputed.
// Purchases are never deleted.
type Purchase struct {
	ID       string         `json:"_id" gorm:"primaryKey"`
	CourseID string         `json:"courseId" gorm:"index;not null"`
	UserID   string         `json:"userId" gorm:"index;not null"`
	Amount   float64        `json:"amount" gorm:"not null"`
	Status   PurchaseStatus `json:"status" gorm:"index;default:'PENDING'"`

	// Raw body of the gateway notification that settled this purchase.
	GatewayPayload datatypes.JSON `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
