package model

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var (
	ErrInviteUsed    = errors.New("invite already used")
	ErrInviteExpired = errors.New("invite expired")
)

// Invite is a single-use, time-limited credential for admin self-registration.
// Used and expired invites are rejected but never purged.
type Invite struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	Email     string    `json:"email"`
	Name      string    `gorm:"column:nome" json:"nome"`
	Surname   string    `gorm:"column:cognome" json:"cognome"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	ExpiresAt time.Time `gorm:"type:timestamp" json:"expires_at"`
	Used      bool      `json:"used"`
}

func NewInviteToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

func (i *Invite) IsExpired(now time.Time) bool {
	if i == nil {
		return true
	}

	return now.After(i.ExpiresAt)
}

// CheckRedeemable reports why an invite cannot be redeemed, nil if it can.
func (i *Invite) CheckRedeemable(now time.Time) error {
	if i.Used {
		return ErrInviteUsed
	}

	if i.IsExpired(now) {
		return ErrInviteExpired
	}

	return nil
}
