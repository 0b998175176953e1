package repository

import (
	"context"

	"plataform/entities"
)

type PlataformRepository interface {
	Create(ctx context.Context, p *entities.Plataform) error
	// List returns the newest submissions first.
	List(ctx context.Context) ([]entities.Plataform, error)
}
