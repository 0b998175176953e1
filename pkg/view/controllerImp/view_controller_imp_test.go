package controllerImp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"plataform/config"
	"plataform/database"
	"plataform/entities"
	"plataform/pkg/backend"
	labRepoImp "plataform/pkg/laboratory/repositoryImp"
	"plataform/pkg/logger"
	"plataform/pkg/page"
	platRepoImp "plataform/pkg/plataform/repositoryImp"
	platSvcImp "plataform/pkg/plataform/serviceImp"
	infoRepoImp "plataform/pkg/propertyinfo/repositoryImp"
	"plataform/pkg/view"
)

func init() { logger.SetOutput(io.Discard) }

type harness struct {
	e  *echo.Echo
	db *gorm.DB
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil, 2*time.Second)
}

// newHarnessWith serves pages over the seeded mock backend. wrap, when set,
// decorates the client the pages fetch through.
func newHarnessWith(t *testing.T, wrap func(backend.Client) backend.Client, loaderWait time.Duration) *harness {
	t.Helper()
	db, err := database.Open(config.AppConfig{DBEngine: "sqlite", DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	infos := infoRepoImp.New(db)
	labs := labRepoImp.New(db)
	svc := platSvcImp.NewPlataformService(platRepoImp.New(db), infos, labs)

	var client backend.Client = backend.NewMock(infos, labs, svc)
	if wrap != nil {
		client = wrap(client)
	}
	store := page.NewStore(client, page.Options{Location: time.UTC}, time.Minute)
	t.Cleanup(func() {
		store.CloseAll()
		_ = database.Close(db)
	})

	e := echo.New()
	e.Renderer = view.NewRenderer()
	New(store, loaderWait).Register(e)
	return &harness{e: e, db: db}
}

func (h *harness) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

// document fetches target, following one redirect like a browser would.
func (h *harness) document(t *testing.T, target string) *goquery.Document {
	t.Helper()
	rec := h.do(t, http.MethodGet, target, nil, "")
	if rec.Code == http.StatusSeeOther {
		target = rec.Header().Get(echo.HeaderLocation)
		rec = h.do(t, http.MethodGet, target, nil, "")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", target, rec.Code)
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func (h *harness) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return h.do(t, http.MethodPost, target, strings.NewReader(form.Encode()), echo.MIMEApplicationForm)
}

func pagePath(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	action, ok := doc.Find("form#plataforma").Attr("action")
	if !ok || !strings.HasPrefix(action, "/plataforma/") {
		t.Fatalf("form action = %q", action)
	}
	return action
}

func TestIndex_RendersEmptyForm(t *testing.T) {
	h := newHarness(t)
	doc := h.document(t, "/")

	if got := doc.Find("select#infosPropriedade option:not([value='0'])").Length(); got != 6 {
		t.Fatalf("property options = %d, want 6", got)
	}
	if got := doc.Find("select#laboratorio option:not([value='0'])").Length(); got != 5 {
		t.Fatalf("laboratory options = %d, want 5", got)
	}
	if got := strings.TrimSpace(doc.Find(".contador").Text()); got != "0/40" {
		t.Fatalf("counter = %q", got)
	}
	if v, _ := doc.Find("input#nome").Attr("maxlength"); v != "40" {
		t.Fatalf("maxlength = %q", v)
	}
	if doc.Find("#aviso").Length() != 0 || doc.Find("#reiniciar").Length() != 0 {
		t.Fatal("fresh page must not show a notice or the restart block")
	}
	if _, hidden := doc.Find("#cnpj-ajuda").Attr("hidden"); !hidden {
		t.Fatal("cnpj helper should be hidden without a selection")
	}
}

func TestIndex_EachLoadIsANewPage(t *testing.T) {
	h := newHarness(t)
	first := pagePath(t, h.document(t, "/"))
	second := pagePath(t, h.document(t, "/"))
	if first == second {
		t.Fatal("reloading must start a fresh page")
	}
}

func TestSubmit_EmptyNameShowsAggregateError(t *testing.T) {
	h := newHarness(t)
	path := pagePath(t, h.document(t, "/"))

	rec := h.post(t, path, url.Values{
		"nome":             {""},
		"dataInicial":      {"2024-03-05"},
		"dataFinal":        {"2024-04-20"},
		"infosPropriedade": {"1"},
		"laboratorio":      {"4"},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != path {
		t.Fatalf("status %d location %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	doc := h.document(t, path)
	aviso := doc.Find("#aviso")
	if got := strings.TrimSpace(aviso.Find(".mensagem").Text()); got != "Preencha os campos obrigatórios." {
		t.Fatalf("notice = %q", got)
	}
	if sev, _ := aviso.Attr("data-severity"); sev != "error" {
		t.Fatalf("severity = %q", sev)
	}
	if ms, _ := aviso.Attr("data-autohide"); ms != "6000" {
		t.Fatalf("autohide = %q", ms)
	}
	if doc.Find(`[data-campo="nome"] .marcador-erro`).Length() != 1 {
		t.Fatal("expected an inline marker on nome")
	}
	if doc.Find(`[data-campo="laboratorio"] .marcador-erro`).Length() != 0 {
		t.Fatal("filled fields must not be marked")
	}
	if doc.Find("#reiniciar").Length() != 0 {
		t.Fatal("restart must stay hidden after a failed submit")
	}

	var n int64
	h.db.Model(&entities.Plataform{}).Count(&n)
	if n != 0 {
		t.Fatalf("stored %d plataformas, want 0", n)
	}
}

func TestSubmit_CompleteFormSucceeds(t *testing.T) {
	h := newHarness(t)
	path := pagePath(t, h.document(t, "/"))

	h.post(t, path, url.Values{
		"nome":             {"Plataforma Norte"},
		"dataInicial":      {"2024-03-05"},
		"dataFinal":        {"2024-04-20"},
		"infosPropriedade": {"1"},
		"laboratorio":      {"4"},
		"observacoes":      {"<b>coleta</b> trimestral"},
	})

	doc := h.document(t, path)
	if got := strings.TrimSpace(doc.Find("#aviso .mensagem").Text()); got != "Cadastro realizado com sucesso!" {
		t.Fatalf("notice = %q", got)
	}
	if icon, _ := doc.Find("#aviso").Attr("data-icon"); icon != "check" {
		t.Fatalf("icon = %q", icon)
	}
	restart := doc.Find("#reiniciar a")
	if href, _ := restart.Attr("href"); href != "/" || strings.TrimSpace(restart.Text()) != "REINICIAR" {
		t.Fatalf("restart link = %q %q", href, restart.Text())
	}
	if !strings.Contains(doc.Find("#reiniciar").Text(), "Protótipo Desktop") {
		t.Fatal("restart block text missing")
	}
	if got := doc.Find("#cnpj").Text(); got != "11.222.333/0001-81" {
		t.Fatalf("cnpj helper = %q", got)
	}

	var stored []entities.Plataform
	if err := h.db.Find(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d plataformas", len(stored))
	}
	got := stored[0]
	if got.StartDate != "2024-03-05T00:00:00Z" || got.PropertyInfoName != "Fazenda Boa Vista" || got.LaboratoryName != "Instituto de Análise Foliar" {
		t.Fatalf("stored = %+v", got)
	}
	if got.CNPJ != "11.222.333/0001-81" || got.Notes != "coleta trimestral" {
		t.Fatalf("stored cnpj/notes = %q / %q", got.CNPJ, got.Notes)
	}
}

func TestSelect_ReturnsDerivedCNPJ(t *testing.T) {
	h := newHarness(t)
	path := pagePath(t, h.document(t, "/"))

	rec := h.do(t, http.MethodPost, path+"/selecao", strings.NewReader(`{"campo":"infosPropriedade","id":4}`), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		CNPJ string `json:"cnpj"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.CNPJ != "33.459.012/0001-38" {
		t.Fatalf("cnpj = %q", out.CNPJ)
	}

	doc := h.document(t, path)
	if sel, _ := doc.Find(`select#infosPropriedade option[selected]`).Attr("value"); sel != "4" {
		t.Fatalf("selected option = %q", sel)
	}

	rec = h.do(t, http.MethodPost, path+"/selecao", strings.NewReader(`{"campo":"infosPropriedade","id":0}`), echo.MIMEApplicationJSON)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.CNPJ != "" {
		t.Fatalf("clearing should empty cnpj, got %q %v", out.CNPJ, err)
	}

	rec = h.do(t, http.MethodPost, path+"/selecao", strings.NewReader(`{"campo":"laboratorio","id":99}`), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown id: status %d", rec.Code)
	}
}

func TestCloseNotice_ClickawayIsIgnored(t *testing.T) {
	h := newHarness(t)
	path := pagePath(t, h.document(t, "/"))
	h.post(t, path, url.Values{})

	h.post(t, path+"/aviso/fechar", url.Values{"motivo": {"clickaway"}})
	if h.document(t, path).Find("#aviso").Length() != 1 {
		t.Fatal("clickaway must not dismiss the notice")
	}
	h.post(t, path+"/aviso/fechar", url.Values{"motivo": {"closeIcon"}})
	if h.document(t, path).Find("#aviso").Length() != 0 {
		t.Fatal("close icon must dismiss the notice")
	}
}

func TestUnknownPageRedirectsHome(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/plataforma/nope", nil, "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("status %d location %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSubmit_JSONOutcome(t *testing.T) {
	h := newHarness(t)
	path := pagePath(t, h.document(t, "/"))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(url.Values{"nome": {"x"}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req.WithContext(context.Background()))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", rec.Code)
	}
	var out struct {
		Estado string            `json:"estado"`
		Erros  map[string]string `json:"erros"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Estado != "invalid" || out.Erros["dataInicial"] != "missing" || out.Erros["nome"] != "" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestIndex_RedirectsToItsOwnPage(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/", nil, "")
	loc := rec.Header().Get(echo.HeaderLocation)
	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(loc, "/plataforma/") {
		t.Fatalf("status %d location %q", rec.Code, loc)
	}
	if got := pagePath(t, h.document(t, loc)); got != loc {
		t.Fatalf("reload rendered %q, want %q", got, loc)
	}
}

type gatedClient struct {
	backend.Client
	release chan struct{}
}

func (g gatedClient) PropertyInfos(ctx context.Context) ([]entities.PropertyInfo, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.Client.PropertyInfos(ctx)
}

func (g gatedClient) Laboratories(ctx context.Context) ([]entities.Laboratory, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.Client.Laboratories(ctx)
}

type optionsBody struct {
	Loading       bool          `json:"carregando"`
	PropertyInfos []page.Option `json:"infospropriedades"`
	Laboratories  []page.Option `json:"laboratorios"`
}

func (h *harness) options(t *testing.T, path string) optionsBody {
	t.Helper()
	rec := h.do(t, http.MethodGet, path+"/opcoes", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("options: status %d", rec.Code)
	}
	var out optionsBody
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestShow_SlowListsAppearOnReload(t *testing.T) {
	release := make(chan struct{})
	h := newHarnessWith(t, func(c backend.Client) backend.Client {
		return gatedClient{Client: c, release: release}
	}, 20*time.Millisecond)

	doc := h.document(t, "/")
	path := pagePath(t, doc)
	if doc.Find("select").Length() != 0 || doc.Find(".carregando").Length() != 1 {
		t.Fatal("selectors must wait for their lists")
	}
	if !strings.Contains(doc.Find("noscript").Text(), "refresh") {
		t.Fatal("a loading page must refresh itself without scripts")
	}
	if !strings.Contains(doc.Find("script").Text(), "/opcoes") {
		t.Fatal("a loading page must poll its options")
	}
	if !h.options(t, path).Loading {
		t.Fatal("options must report loading")
	}

	close(release)
	deadline := time.Now().Add(2 * time.Second)
	var opts optionsBody
	for {
		opts = h.options(t, path)
		if !opts.Loading || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if opts.Loading || len(opts.PropertyInfos) != 6 || len(opts.Laboratories) != 5 {
		t.Fatalf("options = %+v", opts)
	}

	doc = h.document(t, path)
	if got := doc.Find("select#infosPropriedade option:not([value='0'])").Length(); got != 6 {
		t.Fatalf("property options after reload = %d, want 6", got)
	}
	if doc.Find(".carregando").Length() != 0 || doc.Find("noscript").Length() != 0 {
		t.Fatal("a loaded page must stop refreshing")
	}
}

func TestSubmit_AcceptedPageRefusesAnotherSubmit(t *testing.T) {
	h := newHarness(t)
	path := pagePath(t, h.document(t, "/"))
	filled := url.Values{
		"nome":             {"Plataforma Norte"},
		"dataInicial":      {"2024-03-05"},
		"dataFinal":        {"2024-04-20"},
		"infosPropriedade": {"1"},
		"laboratorio":      {"4"},
	}
	h.post(t, path, filled)

	if h.document(t, path).Find("form#plataforma button[type=submit]").Length() != 0 {
		t.Fatal("submit button must be gone after success")
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(filled.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second submit: status %d", rec.Code)
	}

	var n int64
	h.db.Model(&entities.Plataform{}).Count(&n)
	if n != 1 {
		t.Fatalf("stored %d plataformas, want 1", n)
	}
}
