package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/models"
)

const defaultPageLimit = 10

type projectRequest struct {
	Title          string              `json:"title" validate:"required"`
	Description    string              `json:"description" validate:"required"`
	Location       string              `json:"location"`
	Budget         float64             `json:"budget" validate:"gt=0"`
	ExpectedReturn float64             `json:"expectedReturn" validate:"gte=0"`
	Status         enums.ProjectStatus `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
	Images         []string            `json:"images"`
	StartDate      *time.Time          `json:"startDate"`
	EndDate        *time.Time          `json:"endDate"`
}

func (r projectRequest) apply(p *models.Project) {
	p.Title = r.Title
	p.Description = r.Description
	p.Location = r.Location
	p.Budget = r.Budget
	p.ExpectedReturn = r.ExpectedReturn
	p.Status = r.Status
	if p.Status == "" {
		p.Status = enums.ProjectStatusUpcoming
	}
	p.Images = r.Images
	p.StartDate = r.StartDate
	p.EndDate = r.EndDate
}

func (s *Server) listProjects(c echo.Context) error {
	pageNum := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", defaultPageLimit)
	status := enums.ProjectStatus(c.QueryParam("status"))

	s.data.mu.RLock()
	filtered := make([]models.Project, 0, len(s.data.projects))
	for _, p := range s.data.projects {
		if status == "" || p.Status == status {
			filtered = append(filtered, p)
		}
	}
	s.data.mu.RUnlock()

	meta := models.PageMeta{Page: pageNum, Limit: limit, Total: len(filtered)}
	meta.TotalPage = (meta.Total + limit - 1) / limit

	start := (pageNum - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return page(c, "Projects retrieved successfully", meta, filtered[start:end])
}

func (s *Server) getProject(c echo.Context) error {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	i := indexOf(s.data.projects, func(p models.Project) string { return p.ID }, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Project not found")
	}
	return respond(c, http.StatusOK, "Project retrieved successfully", s.data.projects[i])
}

func (s *Server) createProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now().UTC()
	project := models.Project{ID: uuid.NewString(), CreatedAt: &now}
	req.apply(&project)

	s.data.mu.Lock()
	s.data.projects = append(s.data.projects, project)
	s.data.mu.Unlock()

	return respond(c, http.StatusCreated, "Project created successfully", project)
}

func (s *Server) updateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	i := indexOf(s.data.projects, func(p models.Project) string { return p.ID }, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Project not found")
	}
	req.apply(&s.data.projects[i])
	return respond(c, http.StatusOK, "Project updated successfully", s.data.projects[i])
}

func (s *Server) deleteProject(c echo.Context) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	i := indexOf(s.data.projects, func(p models.Project) string { return p.ID }, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Project not found")
	}
	s.data.projects = append(s.data.projects[:i], s.data.projects[i+1:]...)
	return respond(c, http.StatusOK, "Project deleted successfully", nil)
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
