package mockapi

import (
	"github.com/labstack/echo/v4"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
)

// Middlewares are attached per route. Group level middleware would also
// run on the group's catch-all 404 route and turn unknown paths into 401s.
func (s *Server) routes(g *echo.Group) {
	g.POST("/auth/signup", s.signup)
	g.POST("/auth/login", s.login)
	g.POST("/auth/refresh-token", s.refreshToken)
	g.POST("/auth/logout", s.logout)

	member := []echo.MiddlewareFunc{middleware.RequireSession()}
	admin := append(member[:1:1], middleware.RequireRole(enums.RoleAdmin, enums.RoleSuperAdmin))
	superAdmin := append(member[:1:1], middleware.RequireRole(enums.RoleSuperAdmin))

	g.GET("/users/me", s.me, member...)
	g.GET("/users", s.listUsers, admin...)
	g.PATCH("/users/:id/role", s.updateUserRole, superAdmin...)

	g.GET("/projects", s.listProjects, member...)
	g.GET("/projects/:id", s.getProject, member...)
	g.POST("/projects", s.createProject, admin...)
	g.PUT("/projects/:id", s.updateProject, admin...)
	g.DELETE("/projects/:id", s.deleteProject, admin...)

	g.GET("/payments", s.listPayments, member...)
	g.POST("/payments", s.submitManualPayment, member...)
	g.POST("/payments/gateway", s.initiateGatewayPayment, member...)
	g.PATCH("/payments/:id/verify", s.verifyPayment, admin...)

	g.GET("/notices", s.listNotices, member...)
	g.POST("/notices", s.createNotice, admin...)
	g.DELETE("/notices/:id", s.deleteNotice, admin...)

	g.GET("/banners", s.listBanners, member...)
	g.POST("/banners", s.createBanner, admin...)
	g.DELETE("/banners/:id", s.deleteBanner, admin...)

	g.GET("/funds", s.listFundEntries, member...)
	g.GET("/funds/summary", s.fundSummary, member...)
	g.POST("/funds", s.createFundEntry, admin...)
}
