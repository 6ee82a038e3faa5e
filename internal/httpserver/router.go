package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/arkhipovd/storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	auth := e.Group("/api/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/signup", d.AuthHandler.Signup)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/me", d.AuthHandler.Me)

	products := e.Group("/api/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := products.Group("", mw.RequireAdmin)
	admin.POST("", d.ProductHandler.CreateProduct)
	admin.PUT("/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
