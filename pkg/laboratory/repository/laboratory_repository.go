package repository

import (
	"context"

	"plataform/entities"
)

type LaboratoryRepository interface {
	List(ctx context.Context, q string) ([]entities.Laboratory, error)
	FindByID(ctx context.Context, id uint) (*entities.Laboratory, error)
}
