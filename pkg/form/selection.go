package form

import "plataform/entities"

// SelectPropertyInfo stores the chosen property and mirrors its CNPJ.
// A nil value clears both.
func SelectPropertyInfo(r *Record, v *entities.PropertyInfo) {
	if v == nil {
		r.PropertyInfo = nil
		r.CNPJ = ""
		return
	}
	sel := *v
	r.PropertyInfo = &sel
	r.CNPJ = sel.CNPJ
}

func SelectLaboratory(r *Record, v *entities.Laboratory) {
	if v == nil {
		r.Laboratory = nil
		return
	}
	sel := *v
	r.Laboratory = &sel
}

// FindPropertyInfo looks an option up by id. Lists are refetched per page
// load, so identity or full equality would never match.
func FindPropertyInfo(list []entities.PropertyInfo, id uint) *entities.PropertyInfo {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func FindLaboratory(list []entities.Laboratory, id uint) *entities.Laboratory {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// SamePropertyInfo is the option/value equality used when marking the
// selected option.
func SamePropertyInfo(a, b *entities.PropertyInfo) bool {
	return a != nil && b != nil && a.ID == b.ID
}

func SameLaboratory(a, b *entities.Laboratory) bool {
	return a != nil && b != nil && a.ID == b.ID
}
