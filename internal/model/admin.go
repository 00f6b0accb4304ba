package model

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

type Admin struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"column:nome" json:"nome,omitempty"`
	Surname   string    `gorm:"column:cognome" json:"cognome,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `gorm:"not null;default:'admin'" json:"role"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}

func (a *Admin) GetUsername() string {
	if a == nil {
		return ""
	}

	return a.Username
}

func (a *Admin) CheckPassword(password string) bool {
	if a == nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	if err != nil {
		slog.Debug("password check failed", slog.Any("error", err))
		return false
	}

	return true
}

func (a *Admin) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	a.Password = string(b)
	return nil
}
