package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/laboratory/repository"
	"plataform/pkg/textfold"
)

type laboratoryRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LaboratoryRepository { return &laboratoryRepo{db} }

func (r *laboratoryRepo) List(ctx context.Context, q string) ([]entities.Laboratory, error) {
	var all []entities.Laboratory
	if err := r.db.WithContext(ctx).Order("name asc, id asc").Find(&all).Error; err != nil {
		return nil, apperr.Wrapf(apperr.ErrDatabase, "list laboratorios: %v", err)
	}
	if q == "" {
		return all, nil
	}
	out := make([]entities.Laboratory, 0, len(all))
	for _, l := range all {
		if textfold.Contains(l.Name, q) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *laboratoryRepo) FindByID(ctx context.Context, id uint) (*entities.Laboratory, error) {
	var l entities.Laboratory
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrapf(apperr.ErrNotFound, "laboratorio %d", id)
		}
		return nil, apperr.Wrapf(apperr.ErrDatabase, "find laboratorio %d: %v", id, err)
	}
	return &l, nil
}
