// Package form holds the Plataform record, its validation rules, the
// selection handlers and the submission state machine. Nothing here knows
// about HTTP or templates.
package form

import (
	"time"

	"plataform/entities"
)

// Wire names of the form fields.
const (
	FieldName         = "nome"
	FieldStartDate    = "dataInicial"
	FieldEndDate      = "dataFinal"
	FieldPropertyInfo = "infosPropriedade"
	FieldCNPJ         = "cnpj"
	FieldLaboratory   = "laboratorio"
	FieldNotes        = "observacoes"
)

// NameMaxLength is the character limit of the name input.
const NameMaxLength = 40

// Record is the editable state of one registration form.
// Dates stay nil until picked; CNPJ is derived from PropertyInfo.
type Record struct {
	Name         string                 `json:"nome" validate:"required,max=40"`
	StartDate    *time.Time             `json:"dataInicial" validate:"required"`
	EndDate      *time.Time             `json:"dataFinal" validate:"required"`
	PropertyInfo *entities.PropertyInfo `json:"infosPropriedade" validate:"required"`
	CNPJ         string                 `json:"cnpj"`
	Laboratory   *entities.Laboratory   `json:"laboratorio" validate:"required"`
	Notes        string                 `json:"observacoes"`
}
