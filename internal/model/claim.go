package model

import (
	"errors"
	"time"
)

// MaxDocuments is the ceiling for a claim's document checklist.
const MaxDocuments = 10

var ErrTooManyDocuments = errors.New("maximum 10 documents allowed")

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
)

type FileKind string

const (
	FilePdf   FileKind = "pdf"
	FileImage FileKind = "image"
	FileBoth  FileKind = "both"
)

// Field is one dynamic form input definition. The type is a rendering hint
// for the client, it is not enforced on submitted values.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Document is one uploadable document slot within a claim.
type Document struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Required   bool     `json:"required"`
	FileType   FileKind `json:"fileType"`
	ExampleURL string   `json:"esempio_file_url,omitempty"`
}

type Claim struct {
	ID              string            `gorm:"primaryKey" json:"id"`
	Title           string            `gorm:"column:titolo;not null" json:"titolo"`
	Description     string            `gorm:"column:descrizione" json:"descrizione"`
	BadgeText       string            `gorm:"column:badge_text" json:"badge_text"`
	Fields          []*Field          `gorm:"column:campi_dati;serializer:json" json:"campi_dati"`
	Documents       []*Document       `gorm:"column:documenti_richiesti;serializer:json" json:"documenti_richiesti"`
	Active          bool              `gorm:"column:attivo" json:"attivo"`
	RegionDeadlines map[string]string `gorm:"column:scadenze_regioni;serializer:json" json:"scadenze_regioni,omitempty"`
	DefaultDeadline string            `gorm:"column:scadenza_generale" json:"scadenza_generale,omitempty"`
	CreatedAt       time.Time         `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"type:timestamp" json:"updated_at"`
}

func (c *Claim) TableName() string {
	return "ricorsi"
}

func (c *Claim) Validate() error {
	if len(c.Documents) > MaxDocuments {
		return ErrTooManyDocuments
	}

	return nil
}

// GetDocument returns the document slot with the given id, nil if absent.
func (c *Claim) GetDocument(id string) *Document {
	if c == nil {
		return nil
	}

	for _, d := range c.Documents {
		if d.ID == id {
			return d
		}
	}

	return nil
}

type ClaimPostDTO struct {
	Title           string            `json:"titolo"`
	Description     string            `json:"descrizione"`
	BadgeText       string            `json:"badge_text"`
	Fields          []*Field          `json:"campi_dati"`
	Documents       []*Document       `json:"documenti_richiesti"`
	Active          *bool             `json:"attivo"`
	RegionDeadlines map[string]string `json:"scadenze_regioni"`
	DefaultDeadline string            `json:"scadenza_generale"`
}

func (d *ClaimPostDTO) ToClaim() *Claim {
	c := &Claim{
		Title:           d.Title,
		Description:     d.Description,
		BadgeText:       d.BadgeText,
		Fields:          d.Fields,
		Documents:       d.Documents,
		Active:          true,
		RegionDeadlines: d.RegionDeadlines,
		DefaultDeadline: d.DefaultDeadline,
	}

	if c.BadgeText == "" {
		c.BadgeText = "RICORSO COLLETTIVO"
	}

	if d.Active != nil {
		c.Active = *d.Active
	}

	return c
}

// ClaimPutDTO is a partial update. Only non-nil attributes are applied.
type ClaimPutDTO struct {
	Title           *string           `json:"titolo"`
	Description     *string           `json:"descrizione"`
	BadgeText       *string           `json:"badge_text"`
	Fields          []*Field          `json:"campi_dati"`
	Documents       []*Document       `json:"documenti_richiesti"`
	Active          *bool             `json:"attivo"`
	RegionDeadlines map[string]string `json:"scadenze_regioni"`
	DefaultDeadline *string           `json:"scadenza_generale"`
}

// Apply copies the provided attributes onto the claim and reports whether
// anything was set.
func (d *ClaimPutDTO) Apply(c *Claim) bool {
	changed := false

	if d.Title != nil {
		c.Title = *d.Title
		changed = true
	}

	if d.Description != nil {
		c.Description = *d.Description
		changed = true
	}

	if d.BadgeText != nil {
		c.BadgeText = *d.BadgeText
		changed = true
	}

	if d.Fields != nil {
		c.Fields = d.Fields
		changed = true
	}

	if d.Documents != nil {
		c.Documents = d.Documents
		changed = true
	}

	if d.Active != nil {
		c.Active = *d.Active
		changed = true
	}

	if d.RegionDeadlines != nil {
		c.RegionDeadlines = d.RegionDeadlines
		changed = true
	}

	if d.DefaultDeadline != nil {
		c.DefaultDeadline = *d.DefaultDeadline
		changed = true
	}

	return changed
}
