package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/ledger"
	"lms/models"
	"log"
	"strings"

	"github.com/go-resty/resty/v2"
)

// FetchProfile resolves an opaque user ID against the identity provider.
// Matches the ledger.ProfileFetcher signature so controllers can hand it to
// EnsureUser.
func FetchProfile(userID string) (*ledger.Profile, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.IdentityApiKey).
		Get(config.AppConfig.IdentityApiURL + "users/" + userID)
	if err != nil {
		log.Printf("Failed to reach identity provider: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Identity lookup failed: %s", resp.String())
		return nil, fmt.Errorf("identity lookup failed, code: %d", resp.StatusCode())
	}

	var payload struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		PublicMetadata struct {
			Role string `json:"role"`
		} `json:"public_metadata"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		log.Printf("Failed to parse identity response: %v", err)
		return nil, err
	}

	name := strings.TrimSpace(payload.FirstName + " " + payload.LastName)
	if name == "" {
		name = "Unnamed User"
	}
	email := "unknown@email.com"
	if len(payload.EmailAddresses) > 0 {
		email = payload.EmailAddresses[0].EmailAddress
	}

	return &ledger.Profile{
		Name:     name,
		Email:    email,
		ImageURL: payload.ImageURL,
		Role:     models.ParseRole(payload.PublicMetadata.Role),
	}, nil
}

// PromoteToEducator updates the role claim on the identity provider so later
// sessions carry it. The local record is refreshed by the caller.
func PromoteToEducator(userID string) error {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.IdentityApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"public_metadata": map[string]string{"role": "educator"},
		}).
		Patch(config.AppConfig.IdentityApiURL + "users/" + userID + "/metadata")
	if err != nil {
		log.Printf("Failed to reach identity provider: %v", err)
		return err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Role update failed: %s", resp.String())
		return fmt.Errorf("role update failed, code: %d", resp.StatusCode())
	}
	return nil
}
