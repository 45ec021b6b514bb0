package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"log"
	"math"
	"strings"

	"github.com/go-resty/resty/v2"
)

// toMinorUnits converts a major-unit amount to integer minor units. Rounding
// is required: 16.99*100 is 1698.99... in binary, and truncation would
// understate the charge by a cent.
func toMinorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

// CheckoutSession is the gateway's redirect handle for a pending purchase.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession asks the payment gateway for a hosted checkout page.
// The purchase ID travels in the session metadata so the gateway's
// notification can be correlated back to the purchase it settles.
func CreateCheckoutSession(purchaseID, courseTitle string, amount float64, origin string) (*CheckoutSession, error) {
	if origin == "" {
		origin = config.AppConfig.AppBaseURL
	}

	body := map[string]interface{}{
		"amount":      toMinorUnits(amount),
		"currency":    strings.ToLower(config.AppConfig.Currency),
		"description": courseTitle,
		"success_url": origin + "/loading/my-enrollments",
		"cancel_url":  origin + "/",
		"metadata": map[string]string{
			"purchaseId": purchaseID,
		},
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(config.AppConfig.PaymentApiURL + "checkout/sessions")
	if err != nil {
		log.Printf("Failed to reach payment gateway: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("Checkout session request failed: %s", resp.String())
		return nil, fmt.Errorf("checkout session failed, code: %d", resp.StatusCode())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		log.Printf("Failed to parse checkout session response: %v", err)
		return nil, err
	}

	return &session, nil
}
