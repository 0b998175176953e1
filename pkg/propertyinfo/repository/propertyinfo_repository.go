package repository

import (
	"context"

	"plataform/entities"
)

type PropertyInfoRepository interface {
	// List returns every property ordered by name; q filters by name or CNPJ.
	List(ctx context.Context, q string) ([]entities.PropertyInfo, error)
	FindByID(ctx context.Context, id uint) (*entities.PropertyInfo, error)
}
