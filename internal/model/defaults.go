package model

import "github.com/google/uuid"

var regions = []string{
	"Abruzzo", "Basilicata", "Calabria", "Campania", "Emilia-Romagna",
	"Friuli-Venezia Giulia", "Lazio", "Liguria", "Lombardia", "Marche",
	"Molise", "Piemonte", "Puglia", "Sardegna", "Sicilia", "Toscana",
	"Trentino-Alto Adige", "Umbria", "Valle d'Aosta", "Veneto",
}

// DefaultClaim is the claim seeded on first start with an empty store.
func DefaultClaim() *Claim {
	return &Claim{
		ID:          uuid.NewString(),
		Title:       "Ricorso Indennità Compensativa",
		Description: "Ricorso collettivo per l'indennità compensativa riservato ai soci Si.Na.Fi.",
		BadgeText:   "RICORSO COLLETTIVO",
		Fields: []*Field{
			{ID: "nome", Label: "Nome", Type: FieldText, Required: true, Placeholder: "Mario"},
			{ID: "cognome", Label: "Cognome", Type: FieldText, Required: true, Placeholder: "Rossi"},
			{ID: "matricola", Label: "Matricola", Type: FieldText, Required: true, Placeholder: "123456"},
			{ID: "telefono", Label: "Telefono", Type: FieldTel, Required: true, Placeholder: "+39 333 1234567"},
			{ID: "reparto", Label: "Reparto di Servizio", Type: FieldText, Required: true, Placeholder: "Nucleo PEF Milano"},
			{ID: "email", Label: "Email", Type: FieldEmail, Required: true, Placeholder: "mario.rossi@email.com"},
			{ID: "regione", Label: "Regione", Type: FieldSelect, Required: true, Options: regions},
		},
		Documents: []*Document{
			{ID: "istanza", Label: "Istanza", Required: true, FileType: FilePdf},
			{ID: "carta_identita", Label: "Carta d'Identità", Required: true, FileType: FileBoth},
			{ID: "codice_fiscale", Label: "Codice Fiscale", Required: true, FileType: FileBoth},
			{ID: "preavviso_diniego", Label: "Preavviso di Diniego", Required: true, FileType: FilePdf},
			{ID: "diniego", Label: "Diniego", Required: true, FileType: FilePdf},
			{ID: "procura_liti", Label: "Procura alle Liti", Required: true, FileType: FilePdf},
		},
		Active: true,
	}
}

// DefaultAdmin is the account seeded when no admin exists yet.
func DefaultAdmin() *Admin {
	a := &Admin{
		ID:       uuid.NewString(),
		Username: "admin",
		Role:     "admin",
	}

	_ = a.SetPassword("admin123")

	return a
}
