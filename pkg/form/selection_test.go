package form

import (
	"testing"

	"plataform/entities"
)

func TestSelectPropertyInfo_CopiesAndClearsCNPJ(t *testing.T) {
	var r Record
	for _, p := range propertyInfos() {
		p := p
		SelectPropertyInfo(&r, &p)
		if r.CNPJ != p.CNPJ {
			t.Fatalf("cnpj = %q, want %q", r.CNPJ, p.CNPJ)
		}
	}
	SelectPropertyInfo(&r, nil)
	if r.PropertyInfo != nil || r.CNPJ != "" {
		t.Fatalf("expected cleared selection, got %+v / %q", r.PropertyInfo, r.CNPJ)
	}
}

func TestSelectPropertyInfo_StoresACopy(t *testing.T) {
	var r Record
	list := propertyInfos()
	SelectPropertyInfo(&r, &list[0])
	list[0].CNPJ = "changed"
	if r.PropertyInfo.CNPJ == "changed" {
		t.Fatal("selection must not alias the option list")
	}
}

func TestFindByID_IndependentOfFetch(t *testing.T) {
	first := propertyInfos()
	second := propertyInfos()

	var r Record
	SelectPropertyInfo(&r, FindPropertyInfo(first, 3))
	opt := FindPropertyInfo(second, 3)
	if opt == nil || opt.ID != 3 || r.PropertyInfo.ID != 3 {
		t.Fatalf("lookup by id failed: %+v / %+v", opt, r.PropertyInfo)
	}
	if !SamePropertyInfo(r.PropertyInfo, opt) {
		t.Fatal("options from a later fetch must match the selection by id")
	}
	if SamePropertyInfo(r.PropertyInfo, &second[0]) {
		t.Fatal("different ids must not match")
	}
	if FindPropertyInfo(second, 99) != nil {
		t.Fatal("unknown id must yield nil")
	}
}

func TestSelectLaboratory(t *testing.T) {
	var r Record
	SelectLaboratory(&r, FindLaboratory(laboratories(), 12))
	if r.Laboratory == nil || r.Laboratory.ID != 12 {
		t.Fatalf("laboratory = %+v", r.Laboratory)
	}
	if !SameLaboratory(r.Laboratory, &entities.Laboratory{ID: 12}) {
		t.Fatal("expected id equality")
	}
	SelectLaboratory(&r, nil)
	if r.Laboratory != nil {
		t.Fatal("expected cleared laboratory")
	}
}
