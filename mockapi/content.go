package mockapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octabyte/bm-gateway/models"
)

type noticeRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type bannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image" validate:"required,url"`
	Link     string `json:"link" validate:"omitempty,url"`
	Active   bool   `json:"isActive"`
}

func (s *Server) listNotices(c echo.Context) error {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	// Newest first.
	notices := make([]models.Notice, 0, len(s.data.notices))
	for i := len(s.data.notices) - 1; i >= 0; i-- {
		notices = append(notices, s.data.notices[i])
	}
	return respond(c, http.StatusOK, "Notices retrieved successfully", notices)
}

func (s *Server) createNotice(c echo.Context) error {
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now().UTC()
	notice := models.Notice{ID: uuid.NewString(), Title: req.Title, Description: req.Description, CreatedAt: &now}

	s.data.mu.Lock()
	s.data.notices = append(s.data.notices, notice)
	s.data.mu.Unlock()

	return respond(c, http.StatusCreated, "Notice created successfully", notice)
}

func (s *Server) deleteNotice(c echo.Context) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	i := indexOf(s.data.notices, func(n models.Notice) string { return n.ID }, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Notice not found")
	}
	s.data.notices = append(s.data.notices[:i], s.data.notices[i+1:]...)
	return respond(c, http.StatusOK, "Notice deleted successfully", nil)
}

func (s *Server) listBanners(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	banners := make([]models.Banner, 0, len(s.data.banners))
	for _, b := range s.data.banners {
		if !activeOnly || b.Active {
			banners = append(banners, b)
		}
	}
	return respond(c, http.StatusOK, "Banners retrieved successfully", banners)
}

func (s *Server) createBanner(c echo.Context) error {
	var req bannerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	banner := models.Banner{ID: uuid.NewString(), Title: req.Title, ImageURL: req.ImageURL, Link: req.Link, Active: req.Active}

	s.data.mu.Lock()
	s.data.banners = append(s.data.banners, banner)
	s.data.mu.Unlock()

	return respond(c, http.StatusCreated, "Banner created successfully", banner)
}

func (s *Server) deleteBanner(c echo.Context) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	i := indexOf(s.data.banners, func(b models.Banner) string { return b.ID }, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Banner not found")
	}
	s.data.banners = append(s.data.banners[:i], s.data.banners[i+1:]...)
	return respond(c, http.StatusOK, "Banner deleted successfully", nil)
}
