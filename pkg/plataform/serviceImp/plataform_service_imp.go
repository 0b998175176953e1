package serviceImp

import (
	"context"
	"errors"
	"html"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/form"
	labRepo "plataform/pkg/laboratory/repository"
	"plataform/pkg/logger"
	repo "plataform/pkg/plataform/repository"
	"plataform/pkg/plataform/service"
	infoRepo "plataform/pkg/propertyinfo/repository"
)

const (
	msgInvalidPayload = "payload inválido"
	maxCleanPasses    = 4
)

type plataformSvc struct {
	r      repo.PlataformRepository
	infos  infoRepo.PropertyInfoRepository
	labs   labRepo.LaboratoryRepository
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewPlataformService(r repo.PlataformRepository, infos infoRepo.PropertyInfoRepository, labs labRepo.LaboratoryRepository) service.PlataformService {
	return &plataformSvc{
		r:      r,
		infos:  infos,
		labs:   labs,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// cleanNotes keeps the text of the notes and drops markup. Entity-encoded
// tags decode into markup, so sanitizing repeats until the text is stable.
func (s *plataformSvc) cleanNotes(notes string) string {
	for pass := 0; pass < maxCleanPasses; pass++ {
		next := html.UnescapeString(s.policy.Sanitize(notes))
		if next == notes {
			return notes
		}
		notes = next
	}
	return s.policy.Sanitize(notes)
}

func (s *plataformSvc) Create(ctx context.Context, p entities.PlataformPayload) (*entities.Plataform, error) {
	p.Notes = s.cleanNotes(p.Notes)

	fe := form.Check(p)
	for field, value := range map[string]string{form.FieldStartDate: p.StartDate, form.FieldEndDate: p.EndDate} {
		if value == "" || fe.Has(field) {
			continue
		}
		if _, err := time.Parse(form.DateLayout, value); err != nil {
			fe[field] = form.KindInvalid
		}
	}
	if p.PropertyInfo.ID != 0 {
		if _, err := s.infos.FindByID(ctx, p.PropertyInfo.ID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			fe[form.FieldPropertyInfo] = form.KindInvalid
		}
	}
	if p.Laboratory.ID != 0 {
		if _, err := s.labs.FindByID(ctx, p.Laboratory.ID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			fe[form.FieldLaboratory] = form.KindInvalid
		}
	}
	if len(fe) > 0 {
		fields := make(map[string]string, len(fe))
		for k, v := range fe {
			fields[k] = string(v)
		}
		return nil, apperr.NewValidationError(msgInvalidPayload, fields)
	}

	rec := &entities.Plataform{
		Name:             p.Name,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		PropertyInfoID:   p.PropertyInfo.ID,
		PropertyInfoName: p.PropertyInfo.Name,
		CNPJ:             p.CNPJ,
		LaboratoryID:     p.Laboratory.ID,
		LaboratoryName:   p.Laboratory.Name,
		Notes:            p.Notes,
		CreatedAt:        s.now(),
	}
	if err := s.r.Create(ctx, rec); err != nil {
		return nil, err
	}
	logger.WithFields(map[string]any{"component": "mockbackend", "id": rec.ID}).Info("plataforma stored")
	return rec, nil
}

func (s *plataformSvc) List(ctx context.Context) ([]entities.Plataform, error) {
	return s.r.List(ctx)
}
