// pkg/backend/client.go

// Package backend reaches the service that owns the reference lists and
// receives submissions: over HTTP, or in-process against the mock backend.
package backend

import (
	"context"

	"plataform/entities"
)

const (
	ResourcePropertyInfos = "infospropriedades"
	ResourceLaboratories  = "laboratorios"
)

type Client interface {
	PropertyInfos(ctx context.Context) ([]entities.PropertyInfo, error)
	Laboratories(ctx context.Context) ([]entities.Laboratory, error)
	// SubmitPlataform delivers one payload. Any accepted answer is success;
	// the response body is not interpreted.
	SubmitPlataform(ctx context.Context, p entities.PlataformPayload) error
}
