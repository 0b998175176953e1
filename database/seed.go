package database

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/cnpj"
	"plataform/pkg/logger"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type Fixtures struct {
	PropertyInfos []entities.PropertyInfo `yaml:"infospropriedades"`
	Laboratories  []entities.Laboratory   `yaml:"laboratorios"`
}

// LoadFixtures parses fixture YAML. Every CNPJ must carry valid check digits;
// it is stored in the formatted 00.000.000/0000-00 form.
func LoadFixtures(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fx, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, p := range fx.PropertyInfos {
		if !cnpj.IsValid(p.CNPJ) {
			return fx, apperr.Wrapf(apperr.ErrValidation, "fixture %q: invalid cnpj %q", p.Name, p.CNPJ)
		}
		fx.PropertyInfos[i].CNPJ = cnpj.Format(p.CNPJ)
	}
	return fx, nil
}

// Seed fills the reference tables from the embedded fixtures when they are empty.
func Seed(db *gorm.DB) error {
	fx, err := LoadFixtures(fixturesYAML)
	if err != nil {
		return err
	}
	return SeedWith(db, fx)
}

func SeedWith(db *gorm.DB, fx Fixtures) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.PropertyInfo{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 && len(fx.PropertyInfos) > 0 {
			if err := tx.Create(&fx.PropertyInfos).Error; err != nil {
				return fmt.Errorf("seed infos_propriedades: %w", err)
			}
			logger.Infof("seeded %d infos_propriedades", len(fx.PropertyInfos))
		}
		if err := tx.Model(&entities.Laboratory{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 && len(fx.Laboratories) > 0 {
			if err := tx.Create(&fx.Laboratories).Error; err != nil {
				return fmt.Errorf("seed laboratorios: %w", err)
			}
			logger.Infof("seeded %d laboratorios", len(fx.Laboratories))
		}
		return nil
	})
}
