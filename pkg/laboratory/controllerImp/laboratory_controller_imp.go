package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"plataform/pkg/laboratory/repository"
	"plataform/pkg/logger"
)

type LaboratoryCtrl struct {
	repo repository.LaboratoryRepository
}

func New(repo repository.LaboratoryRepository) *LaboratoryCtrl { return &LaboratoryCtrl{repo: repo} }

func (h *LaboratoryCtrl) Register(g *echo.Group) {
	g.GET("/laboratorios", h.List)
}

func (h *LaboratoryCtrl) List(c echo.Context) error {
	list, err := h.repo.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		logger.WithError(err).Error("list laboratorios")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"laboratorios": list})
}
