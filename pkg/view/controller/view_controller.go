package controller

import "github.com/labstack/echo/v4"

type ViewController interface {
	Index(c echo.Context) error
	Show(c echo.Context) error
	Options(c echo.Context) error
	Submit(c echo.Context) error
	Select(c echo.Context) error
	CloseNotice(c echo.Context) error
}
