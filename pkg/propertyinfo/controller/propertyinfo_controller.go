package controller

import "github.com/labstack/echo/v4"

type PropertyInfoController interface {
	List(c echo.Context) error
}
