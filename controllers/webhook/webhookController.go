package webhookController

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"lms/config"
	"lms/database"
	"lms/ledger"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// notificationPayload is the gateway's webhook body. The purchase ID we put
// into the checkout session metadata comes back here.
type notificationPayload struct {
	Event string `json:"event"` // checkout.completed | checkout.failed
	Data  struct {
		Metadata struct {
			PurchaseID string `json:"purchaseId"`
		} `json:"metadata"`
	} `json:"data"`
}

// VerifySignature checks the gateway's HMAC-SHA256 signature over the raw
// body. Authenticity is settled here, before the ledger is touched.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandlePaymentNotification settles a purchase from a gateway webhook.
// Deliveries are at-least-once: a redelivery against an already-terminal
// purchase is acknowledged with 200 so the gateway stops retrying, while an
// unknown purchase ID is rejected.
func HandlePaymentNotification(c *fiber.Ctx) error {
	body := c.Body()

	signature := c.Get("X-Gateway-Signature")
	if !VerifySignature(body, signature, config.AppConfig.PaymentWebhookSecret) {
		log.Println("Rejected webhook with bad signature")
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid signature!", nil)
	}

	var payload notificationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
	}

	var outcome ledger.NotificationOutcome
	switch payload.Event {
	case "checkout.completed":
		outcome = ledger.OutcomeSuccess
	case "checkout.failed":
		outcome = ledger.OutcomeFailure
	default:
		log.Printf("Ignoring unhandled gateway event %q", payload.Event)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}

	purchaseID := payload.Data.Metadata.PurchaseID
	if purchaseID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing purchaseId metadata!", nil)
	}

	result, err := ledger.ApplyGatewayNotification(database.Database.Db, purchaseID, outcome, body)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			log.Printf("Webhook referenced unknown purchase %s", purchaseID)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown purchase!", nil)
		}
		log.Printf("Failed to apply gateway notification for purchase %s: %v", purchaseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process notification!", nil)
	}

	if result.AlreadySettled {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase already settled.", nil)
	}

	if result.NewlyEnrolled {
		notifyEnrollment(result.Purchase)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification processed.", nil)
}

func notifyEnrollment(purchase *models.Purchase) {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, "id = ?", purchase.UserID).Error; err != nil {
		log.Printf("Skipping enrollment email, user %s not found: %v", purchase.UserID, err)
		return
	}
	var course models.Course
	if err := db.First(&course, "id = ?", purchase.CourseID).Error; err != nil {
		log.Printf("Skipping enrollment email, course %s not found: %v", purchase.CourseID, err)
		return
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
}
