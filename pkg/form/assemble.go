package form

import (
	"errors"
	"time"

	"plataform/entities"
)

// DateLayout is the fixed textual date-time of the payload. The time part is
// a literal: the value is the local calendar date, not a UTC instant.
const DateLayout = "2006-01-02T00:00:00Z"

var errIncomplete = errors.New("record is missing required selections")

// FormatDate renders the calendar date of t as seen in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Assemble turns a validated record into the outbound payload.
// Reference objects are trimmed to {id, nome}.
func Assemble(r Record) (entities.PlataformPayload, error) {
	if r.StartDate == nil || r.EndDate == nil || r.PropertyInfo == nil || r.Laboratory == nil {
		return entities.PlataformPayload{}, errIncomplete
	}
	return entities.PlataformPayload{
		Name:         r.Name,
		StartDate:    FormatDate(*r.StartDate),
		EndDate:      FormatDate(*r.EndDate),
		PropertyInfo: entities.Ref{ID: r.PropertyInfo.ID, Name: r.PropertyInfo.Name},
		CNPJ:         r.CNPJ,
		Laboratory:   entities.Ref{ID: r.Laboratory.ID, Name: r.Laboratory.Name},
		Notes:        r.Notes,
	}, nil
}

// ParseDate reads a picker value (YYYY-MM-DD) as midnight in loc.
// An empty value yields nil.
func ParseDate(v string, loc *time.Location) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
