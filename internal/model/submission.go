package model

import (
	"fmt"
	"time"
)

// Submission is one user's filled form for a claim. UserData is stored
// verbatim, it is never validated against the claim's field list.
type Submission struct {
	ID          string            `gorm:"primaryKey" json:"id"`
	ClaimID     string            `gorm:"column:ricorso_id;index" json:"ricorso_id"`
	ClaimTitle  string            `gorm:"column:ricorso_titolo" json:"ricorso_titolo"`
	UserData    map[string]any    `gorm:"column:dati_utente;serializer:json" json:"dati_utente"`
	Files       map[string]string `gorm:"column:files_info;serializer:json" json:"files_info"`
	SubmittedAt time.Time         `gorm:"column:submitted_at;type:timestamp" json:"submitted_at"`
	ReferenceID string            `gorm:"column:reference_id" json:"reference_id"`
}

// NewReferenceID makes the human-facing submission code.
func NewReferenceID(t time.Time) string {
	return fmt.Sprintf("REF-%d", t.Unix())
}
