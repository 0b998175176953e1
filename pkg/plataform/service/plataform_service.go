package service

import (
	"context"
	"io"

	"plataform/entities"
)

type PlataformService interface {
	// Create validates and stores a submitted payload. Validation failures
	// are *apperr.ValidationError.
	Create(ctx context.Context, p entities.PlataformPayload) (*entities.Plataform, error)
	List(ctx context.Context) ([]entities.Plataform, error)
	// ExportXLSX writes every stored submission as a spreadsheet.
	ExportXLSX(ctx context.Context, w io.Writer) error
}
