package webhookController

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/database"
	"lms/ledger"
	"lms/models"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testWebhookSecret = "whsec_test"

// sign mimics the gateway side: hex HMAC-SHA256 over the raw body.
func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"checkout.completed","data":{"metadata":{"purchaseId":"p1"}}}`)

	assert.True(t, VerifySignature(body, sign(body, testWebhookSecret), testWebhookSecret))

	// tampered body
	assert.False(t, VerifySignature([]byte(`{"event":"checkout.failed"}`), sign(body, testWebhookSecret), testWebhookSecret))

	// wrong secret
	assert.False(t, VerifySignature(body, sign(body, "other"), testWebhookSecret))

	// missing header
	assert.False(t, VerifySignature(body, "", testWebhookSecret))
}

func setupWebhookTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		PaymentWebhookSecret: testWebhookSecret,
		Currency:             "USD",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Chapter{},
		&models.Lecture{},
		&models.Rating{},
		&models.Enrollment{},
		&models.Purchase{},
		&models.LectureCompletion{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/api/webhooks/payment", HandlePaymentNotification)
	return app
}

func seedPendingPurchase(t *testing.T) *models.Purchase {
	t.Helper()
	db := database.Database.Db

	user := models.User{ID: "user_1", Name: "Test User", Email: "user_1@example.com"}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{ID: "course_1", EducatorID: "edu_1", Title: "Webhook Course", Price: 100}
	require.NoError(t, db.Create(&course).Error)

	purchase, err := ledger.CreatePurchase(db, course.ID, user.ID)
	require.NoError(t, err)
	return purchase
}

func postNotification(t *testing.T, app *fiber.App, body []byte, signature string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Gateway-Signature", signature)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope.Message
}

func completedEvent(purchaseID string) []byte {
	return []byte(fmt.Sprintf(`{"event":"checkout.completed","data":{"metadata":{"purchaseId":"%s"}}}`, purchaseID))
}

func TestHandlePaymentNotification_BadSignature(t *testing.T) {
	app := setupWebhookTest(t)
	purchase := seedPendingPurchase(t)

	body := completedEvent(purchase.ID)
	status, _ := postNotification(t, app, body, sign(body, "wrong-secret"))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// The rejected delivery must not settle anything.
	var stored models.Purchase
	require.NoError(t, database.Database.Db.First(&stored, "id = ?", purchase.ID).Error)
	assert.Equal(t, models.PurchasePending, stored.Status)
}

func TestHandlePaymentNotification_UnknownPurchase(t *testing.T) {
	app := setupWebhookTest(t)

	body := completedEvent("missing-purchase")
	status, _ := postNotification(t, app, body, sign(body, testWebhookSecret))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandlePaymentNotification_SuccessSettlesAndEnrolls(t *testing.T) {
	app := setupWebhookTest(t)
	purchase := seedPendingPurchase(t)
	db := database.Database.Db

	body := completedEvent(purchase.ID)
	status, _ := postNotification(t, app, body, sign(body, testWebhookSecret))
	assert.Equal(t, fiber.StatusOK, status)

	var stored models.Purchase
	require.NoError(t, db.First(&stored, "id = ?", purchase.ID).Error)
	assert.Equal(t, models.PurchaseCompleted, stored.Status)

	enrolled, err := ledger.IsEnrolled(db, purchase.UserID, purchase.CourseID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestHandlePaymentNotification_RedeliveryIsAcknowledged(t *testing.T) {
	app := setupWebhookTest(t)
	purchase := seedPendingPurchase(t)
	db := database.Database.Db

	body := completedEvent(purchase.ID)

	status, _ := postNotification(t, app, body, sign(body, testWebhookSecret))
	require.Equal(t, fiber.StatusOK, status)

	status, message := postNotification(t, app, body, sign(body, testWebhookSecret))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Purchase already settled.", message)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", purchase.UserID, purchase.CourseID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
