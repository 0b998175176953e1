package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"plataform/pkg/apperr"
	"plataform/pkg/form"
	"plataform/pkg/logger"
	"plataform/pkg/page"
	"plataform/pkg/snackbar"
)

const templateName = "plataforma"

type ViewCtrl struct {
	store      *page.Store
	loaderWait time.Duration
}

// New serves pages from store. loaderWait bounds how long a render waits
// for reference lists that are still loading.
func New(store *page.Store, loaderWait time.Duration) *ViewCtrl {
	return &ViewCtrl{store: store, loaderWait: loaderWait}
}

func (h *ViewCtrl) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	g := e.Group("/plataforma/:id")
	g.GET("", h.Show)
	g.GET("/opcoes", h.Options)
	g.POST("", h.Submit)
	g.POST("/selecao", h.Select)
	g.POST("/aviso/fechar", h.CloseNotice)
}

// Index is a page load: a fresh page with an empty record. The browser is
// sent to the page's own address so a reload shows the same page.
func (h *ViewCtrl) Index(c echo.Context) error {
	p := h.store.Create(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/plataforma/"+p.ID)
}

func (h *ViewCtrl) Show(c echo.Context) error {
	p, err := h.store.Get(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.waitLoader(c.Request().Context(), p)
	return c.Render(http.StatusOK, templateName, p.View())
}

// Options reports the selector contents; the page polls it while loading.
func (h *ViewCtrl) Options(c echo.Context) error {
	p, err := h.store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
	}
	v := p.View()
	return c.JSON(http.StatusOK, echo.Map{
		"carregando":        v.Loading,
		"infospropriedades": v.PropertyInfos,
		"laboratorios":      v.Laboratories,
		"indisponiveis":     v.Unavailable,
	})
}

func (h *ViewCtrl) waitLoader(ctx context.Context, p *page.Page) {
	if h.loaderWait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, h.loaderWait)
	defer cancel()
	p.Loader().Wait(ctx)
}

func (h *ViewCtrl) Submit(c echo.Context) error {
	p, err := h.store.Get(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	var in page.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form"})
	}
	out := p.Submit(c.Request().Context(), in)
	if wantsJSON(c) {
		body := echo.Map{
			"estado": out.State.String(),
			"erros":  out.FieldErrors,
			"aviso":  p.Snackbar(),
		}
		if out.State == form.StateSucceeded {
			body["plataforma"] = p.LastPayload()
		}
		return c.JSON(statusFor(out), body)
	}
	return c.Redirect(http.StatusSeeOther, "/plataforma/"+p.ID)
}

type selectReq struct {
	Field string `json:"campo" form:"campo"`
	ID    uint   `json:"id" form:"id"`
}

// Select applies one selection without a full submit and returns the
// derived CNPJ for the helper text.
func (h *ViewCtrl) Select(c echo.Context) error {
	p, err := h.store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
	}
	var req selectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	switch req.Field {
	case form.FieldPropertyInfo:
		_, err = p.SelectPropertyInfo(req.ID)
	case form.FieldLaboratory:
		err = p.SelectLaboratory(req.ID)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown campo"})
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	v := p.View()
	return c.JSON(http.StatusOK, echo.Map{"campo": req.Field, "cnpj": v.CNPJ})
}

func (h *ViewCtrl) CloseNotice(c echo.Context) error {
	p, err := h.store.Get(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	reason := snackbar.CloseReason(c.FormValue("motivo"))
	if reason == "" {
		reason = snackbar.ReasonCloseIcon
	}
	closed := p.CloseSnackbar(reason)
	logger.WithFields(map[string]any{"component": "view", "page": p.ID, "reason": reason, "closed": closed}).Debug("close notice")
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, p.Snackbar())
	}
	return c.Redirect(http.StatusSeeOther, "/plataforma/"+p.ID)
}

func wantsJSON(c echo.Context) bool {
	return c.Request().Header.Get(echo.HeaderAccept) == echo.MIMEApplicationJSON
}

func statusFor(out form.Outcome) int {
	if errors.Is(out.Err, form.ErrAlreadySubmitted) {
		return http.StatusConflict
	}
	switch out.State {
	case form.StateSucceeded:
		return http.StatusOK
	case form.StateInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
