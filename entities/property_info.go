package entities

import "time"

// PropertyInfo is a registrable property. CNPJ is stored as displayed by the backend.
type PropertyInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Name      string    `gorm:"index" json:"nome" yaml:"nome"`
	CNPJ      string    `json:"cnpj" yaml:"cnpj"`
	CreatedAt time.Time `json:"-" yaml:"-"`
}

func (PropertyInfo) TableName() string { return "infos_propriedades" }
