package ledger

import (
	"errors"
	"lms/models"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Profile is what the identity provider knows about a user.
type Profile struct {
	Name     string
	Email    string
	ImageURL string
	Role     models.Role
}

// ProfileFetcher resolves an opaque user ID against the identity provider.
type ProfileFetcher func(userID string) (*Profile, error)

// EnsureUser returns the local user record for an identity-provider ID,
// materializing it from the provider on first access. Concurrent first
// accesses converge on one row: the insert is ON CONFLICT DO NOTHING on the
// primary key, and every caller re-reads afterwards. A provider outage
// surfaces as ErrUpstream so the client can retry, never as a nil user.
func EnsureUser(db *gorm.DB, userID string, fetch ProfileFetcher) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile, err := fetch(userID)
	if err != nil {
		log.Printf("Identity lookup failed for %s: %v", userID, err)
		return nil, ErrUpstream
	}

	fresh := models.User{
		ID:       userID,
		Name:     profile.Name,
		Email:    profile.Email,
		ImageURL: profile.ImageURL,
		Role:     profile.Role,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
