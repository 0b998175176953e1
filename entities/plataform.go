package entities

import "time"

// Ref is the trimmed {id, nome} form of a reference entity sent on submit.
type Ref struct {
	ID   uint   `json:"id" validate:"required"`
	Name string `json:"nome" validate:"required"`
}

// PlataformPayload is the outbound submission body.
// Dates are formatted strings, not instants: "2006-01-02T00:00:00Z".
type PlataformPayload struct {
	Name         string `json:"nome" validate:"required,max=40"`
	StartDate    string `json:"dataInicial" validate:"required"`
	EndDate      string `json:"dataFinal" validate:"required"`
	PropertyInfo Ref    `json:"infosPropriedade"`
	CNPJ         string `json:"cnpj"`
	Laboratory   Ref    `json:"laboratorio"`
	Notes        string `json:"observacoes"`
}

// Plataform is a submission as stored by the mock backend.
type Plataform struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `json:"nome"`
	StartDate        string    `json:"dataInicial"`
	EndDate          string    `json:"dataFinal"`
	PropertyInfoID   uint      `gorm:"index" json:"-"`
	PropertyInfoName string    `json:"-"`
	CNPJ             string    `json:"cnpj"`
	LaboratoryID     uint      `gorm:"index" json:"-"`
	LaboratoryName   string    `json:"-"`
	Notes            string    `json:"observacoes"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (Plataform) TableName() string { return "plataformas" }

// Payload rebuilds the wire shape of a stored submission.
func (p Plataform) Payload() PlataformPayload {
	return PlataformPayload{
		Name:         p.Name,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		PropertyInfo: Ref{ID: p.PropertyInfoID, Name: p.PropertyInfoName},
		CNPJ:         p.CNPJ,
		Laboratory:   Ref{ID: p.LaboratoryID, Name: p.LaboratoryName},
		Notes:        p.Notes,
	}
}
