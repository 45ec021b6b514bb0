package webhookRoutes

import (
	controllers "lms/controllers/webhook"

	"github.com/gofiber/fiber/v2"
)

// SetupWebhookRoutes sets up the payment gateway webhook endpoint. No JWT
// here: authenticity comes from the gateway signature on the raw body.
func SetupWebhookRoutes(app *fiber.App) {
	app.Post("/api/webhooks/payment", controllers.HandlePaymentNotification)
}
