package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/handlers"
	mwauth "github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/middleware/auth"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

type Deps struct {
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	Gate        *mwauth.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout, d.Gate.RequireAuth)

	users := api.Group("/users", d.Gate.RequireAuth)
	users.GET("", d.UserHandler.ListUsers, mwauth.RequireRoles(models.RoleAdmin))
	users.GET("/:id", d.UserHandler.GetUser)
}
