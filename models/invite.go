package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// Invite lets someone register an account with a preset role.
type Invite struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Code      string         `gorm:"uniqueIndex;not null;size:64" json:"code"`
	Email     string         `gorm:"size:200" json:"email,omitempty"`
	Role      Role           `gorm:"not null;size:32" json:"role"`
	Used      bool           `gorm:"default:false" json:"used"`
	CreatedBy uint           `gorm:"not null" json:"created_by"`
	ExpiresAt time.Time      `gorm:"not null" json:"expires_at"`
}

func GenerateInviteCode() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (i *Invite) IsValid(now time.Time) bool {
	return !i.Used && now.Before(i.ExpiresAt)
}

// Admits reports whether the invite may be redeemed for email. Invites
// issued without an address admit anyone.
func (i *Invite) Admits(email string) bool {
	return i.Email == "" || i.Email == email
}
