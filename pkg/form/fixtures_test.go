package form

import (
	"time"

	"plataform/entities"
)

func propertyInfos() []entities.PropertyInfo {
	return []entities.PropertyInfo{
		{ID: 1, Name: "Fazenda Boa Vista", CNPJ: "11.222.333/0001-81"},
		{ID: 2, Name: "Sítio Santa Luzia", CNPJ: "45.278.123/0001-27"},
		{ID: 3, Name: "Estância do Sul", CNPJ: "07.321.965/0001-25"},
	}
}

func laboratories() []entities.Laboratory {
	return []entities.Laboratory{
		{ID: 10, Name: "Laboratório Central"},
		{ID: 11, Name: "Agrolab Pelotas"},
		{ID: 12, Name: "Labsolo Passo Fundo"},
	}
}

func date(y int, m time.Month, d int, loc *time.Location) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return &t
}

// completeRecord selects the middle option of each list.
func completeRecord() Record {
	var r Record
	r.Name = "Plataforma Norte"
	r.StartDate = date(2024, time.March, 5, time.UTC)
	r.EndDate = date(2024, time.April, 20, time.UTC)
	SelectPropertyInfo(&r, FindPropertyInfo(propertyInfos(), 2))
	SelectLaboratory(&r, FindLaboratory(laboratories(), 11))
	r.Notes = "coleta trimestral"
	return r
}
