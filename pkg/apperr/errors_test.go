package apperr

import (
	"errors"
	"testing"
)

func TestValidationError_SortsFields(t *testing.T) {
	err := NewValidationError("Preencha os campos obrigatórios.", map[string]string{"nome": "missing", "dataFinal": "missing"})
	want := "Preencha os campos obrigatórios. (dataFinal: missing, nome: missing)"
	if err.Error() != want {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) || errors.Is(err, ErrFetch) {
		t.Fatal("category mismatch")
	}
}

func TestWrappedCategoriesSurvive(t *testing.T) {
	cause := errors.New("connection refused")
	fetch := Wrapf(&FetchError{Resource: "laboratorios", Err: cause}, "loader")
	if !errors.Is(fetch, ErrFetch) || !errors.Is(fetch, cause) {
		t.Fatalf("fetch chain broken: %v", fetch)
	}
	sub := &SubmissionError{Err: cause}
	if !errors.Is(sub, ErrSubmission) || !errors.Is(sub, cause) {
		t.Fatalf("submission chain broken: %v", sub)
	}
	if got := Wrapf(nil, "plain %d", 1).Error(); got != "plain 1" {
		t.Fatalf("Wrapf(nil) = %q", got)
	}
}
