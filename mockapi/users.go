package mockapi

import (
	"errors"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
	"github.com/octabyte/bm-gateway/models"
)

type roleRequest struct {
	Role enums.Role `json:"role" validate:"required,oneof=super_admin admin user"`
}

func (s *Server) me(c echo.Context) error {
	session, _ := middleware.SessionFromContext(c)
	user, found := s.data.user(session.ID)
	if !found {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return respond(c, http.StatusOK, "User retrieved successfully", user)
}

func (s *Server) listUsers(c echo.Context) error {
	users := s.data.users()
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return respond(c, http.StatusOK, "Users retrieved successfully", users)
}

func (s *Server) updateUserRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := s.data.updateUser(c.Param("id"), func(u *models.UserProfile) {
		u.Role = req.Role
	})
	if errors.Is(err, errNotFound) {
		return fail(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User role updated successfully", user)
}
