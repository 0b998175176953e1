// pkg/backend/mock_client.go

package backend

import (
	"context"

	"plataform/entities"
	"plataform/pkg/apperr"
	labRepo "plataform/pkg/laboratory/repository"
	plataformSvc "plataform/pkg/plataform/service"
	infoRepo "plataform/pkg/propertyinfo/repository"
)

// mockClient serves the form straight from the mock backend store, skipping HTTP.
type mockClient struct {
	infos infoRepo.PropertyInfoRepository
	labs  labRepo.LaboratoryRepository
	plats plataformSvc.PlataformService
}

func NewMock(infos infoRepo.PropertyInfoRepository, labs labRepo.LaboratoryRepository, plats plataformSvc.PlataformService) Client {
	return &mockClient{infos: infos, labs: labs, plats: plats}
}

func (m *mockClient) PropertyInfos(ctx context.Context) ([]entities.PropertyInfo, error) {
	list, err := m.infos.List(ctx, "")
	if err != nil {
		return nil, &apperr.FetchError{Resource: ResourcePropertyInfos, Err: err}
	}
	if list == nil {
		list = []entities.PropertyInfo{}
	}
	return list, nil
}

func (m *mockClient) Laboratories(ctx context.Context) ([]entities.Laboratory, error) {
	list, err := m.labs.List(ctx, "")
	if err != nil {
		return nil, &apperr.FetchError{Resource: ResourceLaboratories, Err: err}
	}
	if list == nil {
		list = []entities.Laboratory{}
	}
	return list, nil
}

func (m *mockClient) SubmitPlataform(ctx context.Context, p entities.PlataformPayload) error {
	_, err := m.plats.Create(ctx, p)
	return err
}
