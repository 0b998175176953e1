package entities

import "time"

type Laboratory struct {
	ID        uint      `gorm:"primaryKey" json:"id" yaml:"id"`
	Name      string    `gorm:"index" json:"nome" yaml:"nome"`
	CreatedAt time.Time `json:"-" yaml:"-"`
}

func (Laboratory) TableName() string { return "laboratorios" }
