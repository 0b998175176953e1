package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/cnpj"
	"plataform/pkg/propertyinfo/repository"
	"plataform/pkg/textfold"
)

type propertyInfoRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PropertyInfoRepository { return &propertyInfoRepo{db} }

func (r *propertyInfoRepo) List(ctx context.Context, q string) ([]entities.PropertyInfo, error) {
	var all []entities.PropertyInfo
	if err := r.db.WithContext(ctx).Order("name asc, id asc").Find(&all).Error; err != nil {
		return nil, apperr.Wrapf(apperr.ErrDatabase, "list infos_propriedades: %v", err)
	}
	if q == "" {
		return all, nil
	}
	// accent folding is not portable across sqlite/postgres, so filter here
	digits := cnpj.Digits(q)
	out := make([]entities.PropertyInfo, 0, len(all))
	for _, p := range all {
		if textfold.Contains(p.Name, q) || strings.Contains(p.CNPJ, q) || (len(digits) >= 3 && containsDigits(p.CNPJ, digits)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *propertyInfoRepo) FindByID(ctx context.Context, id uint) (*entities.PropertyInfo, error) {
	var p entities.PropertyInfo
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrapf(apperr.ErrNotFound, "infoPropriedade %d", id)
		}
		return nil, apperr.Wrapf(apperr.ErrDatabase, "find infoPropriedade %d: %v", id, err)
	}
	return &p, nil
}

func containsDigits(formatted, digits string) bool {
	return strings.Contains(cnpj.Digits(formatted), digits)
}
