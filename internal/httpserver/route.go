package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	SessionSecret  []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	sessionMW := middleware.NewSessionMiddleware(d.SessionSecret)

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/signin", d.AuthHandler.SignIn)
	auth.POST("/signout", d.AuthHandler.SignOut)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	admin := v1.Group("/admin", sessionMW.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	v1.GET("/search", d.SearchHandler.Search)

	cart := v1.Group("/cart", sessionMW.RequireSession)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.PUT("", d.CartHandler.SetQuantity)
	cart.DELETE("", d.CartHandler.RemoveItem)
}
