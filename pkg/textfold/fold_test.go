package textfold

import "testing"

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Sítio São João":      "sitio sao joao",
		"  LABORATÓRIO  ":     "laboratorio",
		"Estância do Sul":     "estancia do sul",
		"already plain":       "already plain",
		"Açaí & Cupuaçu Ltda": "acai & cupuacu ltda",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContains(t *testing.T) {
	if !Contains("Sítio Santa Luzia", "sitio") {
		t.Fatal("expected accent-insensitive match")
	}
	if !Contains("Agrolab Pelotas", "") {
		t.Fatal("empty needle must match")
	}
	if Contains("Agrolab Pelotas", "passo") {
		t.Fatal("unexpected match")
	}
}
