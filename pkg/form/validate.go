package form

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"plataform/entities"
	"plataform/pkg/apperr"
)

// ErrorKind is what an inline marker reports about a field.
type ErrorKind string

const (
	KindMissing ErrorKind = "missing"
	KindInvalid ErrorKind = "invalid"
)

// FieldErrors maps wire field names to their problem.
type FieldErrors map[string]ErrorKind

// Has reports whether field carries an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Fields returns the failing field names, sorted.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Result struct {
	Valid       bool
	FieldErrors FieldErrors
}

// Err converts a failed result into an *apperr.ValidationError.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	fields := make(map[string]string, len(r.FieldErrors))
	for k, v := range r.FieldErrors {
		fields[k] = string(v)
	}
	return apperr.NewValidationError(MsgRequiredFields, fields)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs the declarative rules of Record and names every failing field.
func Validate(r Record) Result {
	fe := Check(r)
	return Result{Valid: len(fe) == 0, FieldErrors: fe}
}

// Check validates any struct carrying `validate` tags and returns the
// failures keyed by dotted json path below the top-level struct.
func Check(v any) FieldErrors {
	fe := FieldErrors{}
	err := validate.Struct(v)
	if err == nil {
		return fe
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe["_"] = KindInvalid
		return fe
	}
	for _, e := range verrs {
		name := e.Namespace()
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		kind := KindInvalid
		if e.Tag() == "required" {
			kind = KindMissing
		}
		if _, seen := fe[name]; !seen || kind == KindMissing {
			fe[name] = kind
		}
	}
	return fe
}

// CheckSelections flags selections whose id is absent from the latest lists.
// A list that never loaded (nil) cannot be checked and is skipped.
func CheckSelections(r Record, infos []entities.PropertyInfo, labs []entities.Laboratory) FieldErrors {
	fe := FieldErrors{}
	if r.PropertyInfo != nil && infos != nil && FindPropertyInfo(infos, r.PropertyInfo.ID) == nil {
		fe[FieldPropertyInfo] = KindInvalid
	}
	if r.Laboratory != nil && labs != nil && FindLaboratory(labs, r.Laboratory.ID) == nil {
		fe[FieldLaboratory] = KindInvalid
	}
	return fe
}

// ValidateAgainst combines Validate and CheckSelections.
func ValidateAgainst(r Record, infos []entities.PropertyInfo, labs []entities.Laboratory) Result {
	fe := Check(r)
	for k, v := range CheckSelections(r, infos, labs) {
		if _, ok := fe[k]; !ok {
			fe[k] = v
		}
	}
	return Result{Valid: len(fe) == 0, FieldErrors: fe}
}
