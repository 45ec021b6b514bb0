package ledger

import (
	"errors"
	"lms/models"
	"math"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationOutcome is the settled result the payment gateway reports for a
// checkout session.
type NotificationOutcome string

const (
	OutcomeSuccess NotificationOutcome = "SUCCESS"
	OutcomeFailure NotificationOutcome = "FAILURE"
)

// NotificationResult tells the webhook handler what a notification did, so
// redeliveries can be acknowledged without being mistaken for state changes.
type NotificationResult struct {
	Purchase       *models.Purchase
	AlreadySettled bool
	NewlyEnrolled  bool
}

// DiscountedAmount computes the price after discount, rounded to the
// currency's minor unit. This runs exactly once, at purchase creation.
func DiscountedAmount(price, discount float64) float64 {
	amount := price - discount*price/100
	return math.Round(amount*100) / 100
}

// CreatePurchase records a pending purchase for the given user and course.
// The amount is frozen at creation; later course price changes do not touch
// existing purchases.
func CreatePurchase(db *gorm.DB, courseID, userID string) (*models.Purchase, error) {
	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	purchase := models.Purchase{
		ID:       uuid.NewString(),
		CourseID: course.ID,
		UserID:   user.ID,
		Amount:   DiscountedAmount(course.Price, course.Discount),
		Status:   models.PurchasePending,
	}

	if err := db.Create(&purchase).Error; err != nil {
		return nil, err
	}

	return &purchase, nil
}

// ApplyGatewayNotification settles a purchase from a gateway notification.
// The gateway delivers at least once and possibly out of order, so the status
// flip is a single conditional update guarded on PENDING: only one delivery
// can win it, and that winner performs the enrollment side effect inside the
// same transaction. Redeliveries against a terminal purchase are acknowledged
// as no-ops. An unknown purchase ID is an error.
func ApplyGatewayNotification(db *gorm.DB, purchaseID string, outcome NotificationOutcome, payload []byte) (*NotificationResult, error) {
	target := models.PurchaseFailed
	if outcome == OutcomeSuccess {
		target = models.PurchaseCompleted
	}

	res := &NotificationResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchaseID, models.PurchasePending).
			Updates(map[string]interface{}{
				"status":          target,
				"gateway_payload": datatypes.JSON(payload),
			})
		if update.Error != nil {
			return update.Error
		}

		var purchase models.Purchase
		if err := tx.First(&purchase, "id = ?", purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		res.Purchase = &purchase

		if update.RowsAffected == 0 {
			// Lost the conditional update: the purchase was already terminal.
			res.AlreadySettled = true
			return nil
		}

		if target == models.PurchaseCompleted {
			created, err := Enroll(tx, purchase.UserID, purchase.CourseID)
			if err != nil {
				return err
			}
			res.NewlyEnrolled = created
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
