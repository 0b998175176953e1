package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/plataform/repository"
)

type plataformRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlataformRepository { return &plataformRepo{db} }

func (r *plataformRepo) Create(ctx context.Context, p *entities.Plataform) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apperr.Wrapf(apperr.ErrDatabase, "create plataforma: %v", err)
	}
	return nil
}

func (r *plataformRepo) List(ctx context.Context) ([]entities.Plataform, error) {
	var out []entities.Plataform
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error; err != nil {
		return nil, apperr.Wrapf(apperr.ErrDatabase, "list plataformas: %v", err)
	}
	return out, nil
}
