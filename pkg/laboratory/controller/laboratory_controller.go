package controller

import "github.com/labstack/echo/v4"

type LaboratoryController interface {
	List(c echo.Context) error
}
