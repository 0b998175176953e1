package controllerImp

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/logger"
	"plataform/pkg/plataform/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PlataformCtrl struct{ s service.PlataformService }

func New(s service.PlataformService) *PlataformCtrl { return &PlataformCtrl{s: s} }

func (h *PlataformCtrl) Register(g *echo.Group) {
	g.POST("/plataformas", h.Create)
	g.GET("/plataformas", h.List)
	g.GET("/plataformas/export.xlsx", h.Export)
}

// plataformView is the stored record in wire shape.
type plataformView struct {
	ID uint `json:"id"`
	entities.PlataformPayload
	CreatedAt time.Time `json:"createdAt"`
}

func toView(p entities.Plataform) plataformView {
	return plataformView{ID: p.ID, PlataformPayload: p.Payload(), CreatedAt: p.CreatedAt}
}

func (h *PlataformCtrl) Create(c echo.Context) error {
	var in entities.PlataformPayload
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.s.Create(c.Request().Context(), in)
	if err != nil {
		var verr *apperr.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Message, "fields": verr.Fields})
		}
		logger.WithError(err).Error("create plataforma")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"plataforma": toView(*out)})
}

func (h *PlataformCtrl) List(c echo.Context) error {
	list, err := h.s.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	views := make([]plataformView, 0, len(list))
	for _, p := range list {
		views = append(views, toView(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"plataformas": views})
}

func (h *PlataformCtrl) Export(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.s.ExportXLSX(c.Request().Context(), &buf); err != nil {
		logger.WithError(err).Error("export plataformas")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="plataformas.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
