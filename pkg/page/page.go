// Package page owns the state of one loaded registration form: the record
// being edited, its reference lists, the snackbar and the submission
// machine. Every mutation goes through the page lock, so a page behaves
// like a single UI thread no matter how many requests touch it.
package page

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/backend"
	"plataform/pkg/form"
	"plataform/pkg/logger"
	"plataform/pkg/referencedata"
	"plataform/pkg/snackbar"
)

var fetchFailureMessages = map[string]string{
	backend.ResourcePropertyInfos: "Não foi possível carregar as informações de propriedade.",
	backend.ResourceLaboratories:  "Não foi possível carregar os laboratórios.",
}

// Input is one post of the form. Selections travel as ids.
type Input struct {
	Name           string `form:"nome"`
	StartDate      string `form:"dataInicial"`
	EndDate        string `form:"dataFinal"`
	PropertyInfoID uint   `form:"infosPropriedade"`
	LaboratoryID   uint   `form:"laboratorio"`
	Notes          string `form:"observacoes"`
}

type Options struct {
	Location           *time.Location
	AutoHide           time.Duration
	SurfaceFetchErrors bool
}

type Page struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	record      form.Record
	fieldErrors form.FieldErrors
	lastPayload *entities.PlataformPayload
	touchedAt   time.Time
	closed      bool

	loc        *time.Location
	autoHide   time.Duration
	loader     *referencedata.Loader
	snackbar   *snackbar.Snackbar
	submission *form.Submission
}

func newPage(id string, client backend.Client, opts Options, now time.Time) *Page {
	p := &Page{
		ID:          id,
		CreatedAt:   now,
		touchedAt:   now,
		fieldErrors: form.FieldErrors{},
		loc:         opts.Location,
		autoHide:    opts.AutoHide,
	}
	if p.loc == nil {
		p.loc = time.Local
	}
	if p.autoHide <= 0 {
		p.autoHide = snackbar.DefaultAutoHide
	}
	p.snackbar = snackbar.New(snackbar.WithAutoHide(p.autoHide), snackbar.WithOnChange(func(st snackbar.State) {
		p.log().WithFields(logrus.Fields{"visible": st.Visible, "severity": st.Severity}).Debug("notice changed")
	}))

	var loaderOpts []referencedata.Option
	if opts.SurfaceFetchErrors {
		loaderOpts = append(loaderOpts, referencedata.WithOnError(func(resource string, _ error) {
			p.snackbar.Show(fetchFailureMessages[resource], snackbar.SeverityWarning, snackbar.IconWarning)
		}))
	}
	p.loader = referencedata.New(client, loaderOpts...)
	p.submission = form.NewSubmission(p.snackbar, client)
	return p
}

func (p *Page) log() *logrus.Entry {
	return logger.WithFields(logrus.Fields{"component": "page", "page": p.ID})
}

// Loader exposes the page's reference data loader.
func (p *Page) Loader() *referencedata.Loader { return p.loader }

// Apply copies posted values into the record. Unparsable dates count as empty.
func (p *Page) Apply(in Input) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyLocked(in)
}

func (p *Page) applyLocked(in Input) {
	p.record.Name = in.Name
	p.record.Notes = in.Notes
	p.record.StartDate = p.parseDate(form.FieldStartDate, in.StartDate)
	p.record.EndDate = p.parseDate(form.FieldEndDate, in.EndDate)
	p.selectPropertyInfoLocked(in.PropertyInfoID)
	p.selectLaboratoryLocked(in.LaboratoryID)
}

func (p *Page) parseDate(field, v string) *time.Time {
	t, err := form.ParseDate(v, p.loc)
	if err != nil {
		p.log().WithError(err).WithField("field", field).Debug("ignoring unparsable date")
		return nil
	}
	return t
}

// SelectPropertyInfo applies a selection by id and returns the derived CNPJ.
// Zero clears the selection; an id missing from the loaded list is rejected.
func (p *Page) SelectPropertyInfo(id uint) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != 0 && form.FindPropertyInfo(p.loader.PropertyInfos(), id) == nil {
		return p.record.CNPJ, apperr.Wrapf(apperr.ErrNotFound, "infoPropriedade %d", id)
	}
	p.selectPropertyInfoLocked(id)
	delete(p.fieldErrors, form.FieldPropertyInfo)
	return p.record.CNPJ, nil
}

func (p *Page) SelectLaboratory(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != 0 && form.FindLaboratory(p.loader.Laboratories(), id) == nil {
		return apperr.Wrapf(apperr.ErrNotFound, "laboratorio %d", id)
	}
	p.selectLaboratoryLocked(id)
	delete(p.fieldErrors, form.FieldLaboratory)
	return nil
}

// selectPropertyInfoLocked resolves id against the current list. An id the
// list no longer has is kept as a bare reference so validation flags it.
func (p *Page) selectPropertyInfoLocked(id uint) {
	if id == 0 {
		form.SelectPropertyInfo(&p.record, nil)
		return
	}
	list := p.loader.PropertyInfos()
	if list == nil {
		form.SelectPropertyInfo(&p.record, nil)
		return
	}
	if opt := form.FindPropertyInfo(list, id); opt != nil {
		form.SelectPropertyInfo(&p.record, opt)
		return
	}
	form.SelectPropertyInfo(&p.record, &entities.PropertyInfo{ID: id})
}

func (p *Page) selectLaboratoryLocked(id uint) {
	if id == 0 {
		form.SelectLaboratory(&p.record, nil)
		return
	}
	list := p.loader.Laboratories()
	if list == nil {
		form.SelectLaboratory(&p.record, nil)
		return
	}
	if opt := form.FindLaboratory(list, id); opt != nil {
		form.SelectLaboratory(&p.record, opt)
		return
	}
	form.SelectLaboratory(&p.record, &entities.Laboratory{ID: id})
}

// Submit applies in and runs the submission machine against the latest lists.
// Once a record was accepted the page keeps it as is and rejects new posts.
func (p *Page) Submit(ctx context.Context, in Input) form.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.submission.RestartVisible() {
		p.applyLocked(in)
	}
	out := p.submission.Submit(ctx, p.record, p.loader.PropertyInfos(), p.loader.Laboratories())
	p.fieldErrors = out.FieldErrors
	if p.fieldErrors == nil {
		p.fieldErrors = form.FieldErrors{}
	}
	if out.Payload != nil {
		p.lastPayload = out.Payload
	}
	p.log().WithField("state", out.State.String()).Info("submit")
	return out
}

// CloseSnackbar forwards an explicit close; clickaway is ignored downstream.
func (p *Page) CloseSnackbar(reason snackbar.CloseReason) bool {
	return p.snackbar.Close(reason)
}

func (p *Page) Snackbar() snackbar.State { return p.snackbar.State() }

// Record returns a copy of the record being edited.
func (p *Page) Record() form.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record
}

// LastPayload is the payload of the last accepted submission, if any.
func (p *Page) LastPayload() *entities.PlataformPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPayload
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	p.touchedAt = now
	p.mu.Unlock()
}

func (p *Page) idleSince() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.touchedAt
}

// Close tears the page down: pending fetches are cancelled and their late
// results dropped, the auto-hide timer is stopped.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.loader.Close()
	p.snackbar.Stop()
	p.log().Debug("page closed")
}
