package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"plataform/pkg/logger"
	"plataform/pkg/propertyinfo/repository"
)

type PropertyInfoCtrl struct {
	repo repository.PropertyInfoRepository
}

func New(repo repository.PropertyInfoRepository) *PropertyInfoCtrl {
	return &PropertyInfoCtrl{repo: repo}
}

// Register mounts the list under the mock backend group (/api).
func (h *PropertyInfoCtrl) Register(g *echo.Group) {
	g.GET("/infospropriedades", h.List)
}

func (h *PropertyInfoCtrl) List(c echo.Context) error {
	list, err := h.repo.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		logger.WithError(err).Error("list infospropriedades")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"infospropriedades": list})
}
