package page

import (
	"errors"
	"unicode/utf8"

	"plataform/pkg/apperr"
	"plataform/pkg/cnpj"
	"plataform/pkg/form"
	"plataform/pkg/snackbar"
)

// Option is one row of a selector.
type Option struct {
	ID       uint   `json:"id"`
	Label    string `json:"nome"`
	Detail   string `json:"detalhe,omitempty"`
	Selected bool   `json:"selecionado"`
}

// View is everything the template needs to render a page.
type View struct {
	ID         string
	Name       string
	NameLength int
	NameMax    int
	StartDate  string
	EndDate    string
	Notes      string
	CNPJ       string

	// nil until the list loaded; the selector is not rendered meanwhile
	PropertyInfos []Option
	Laboratories  []Option
	Loading       bool
	// resources whose fetch failed
	Unavailable []string

	ShowCNPJHelper bool
	Errors         form.FieldErrors

	Snackbar       snackbar.State
	AutoHideMillis int64
	Restart        bool
}

// HasError is a template helper.
func (v View) HasError(field string) bool { return v.Errors.Has(field) }

func (p *Page) View() View {
	infos := p.loader.PropertyInfos()
	labs := p.loader.Laboratories()
	loading := true
	select {
	case <-p.loader.Done():
		loading = false
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	r := p.record
	v := View{
		ID:             p.ID,
		Name:           r.Name,
		NameLength:     utf8.RuneCountInString(r.Name),
		NameMax:        form.NameMaxLength,
		Notes:          r.Notes,
		CNPJ:           cnpj.Format(r.CNPJ),
		Loading:        loading,
		Errors:         form.FieldErrors{},
		Snackbar:       p.snackbar.State(),
		AutoHideMillis: p.autoHide.Milliseconds(),
		Restart:        p.submission.RestartVisible(),
	}
	for k, e := range p.fieldErrors {
		v.Errors[k] = e
	}
	if r.StartDate != nil {
		v.StartDate = r.StartDate.Format("2006-01-02")
	}
	if r.EndDate != nil {
		v.EndDate = r.EndDate.Format("2006-01-02")
	}
	if infos != nil {
		v.PropertyInfos = make([]Option, 0, len(infos))
		for i := range infos {
			v.PropertyInfos = append(v.PropertyInfos, Option{
				ID:       infos[i].ID,
				Label:    infos[i].Name,
				Detail:   cnpj.Format(infos[i].CNPJ),
				Selected: form.SamePropertyInfo(r.PropertyInfo, &infos[i]),
			})
		}
	}
	if labs != nil {
		v.Laboratories = make([]Option, 0, len(labs))
		for i := range labs {
			v.Laboratories = append(v.Laboratories, Option{
				ID:       labs[i].ID,
				Label:    labs[i].Name,
				Selected: form.SameLaboratory(r.Laboratory, &labs[i]),
			})
		}
	}
	for _, err := range p.loader.Errors() {
		var fe *apperr.FetchError
		if errors.As(err, &fe) {
			v.Unavailable = append(v.Unavailable, fe.Resource)
		}
	}
	v.ShowCNPJHelper = r.PropertyInfo != nil && r.CNPJ != "" && !v.Errors.Has(form.FieldPropertyInfo)
	return v
}
