package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
	"github.com/octabyte/bm-gateway/models"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User        models.UserProfile `json:"user"`
	AccessToken string             `json:"accessToken"`
}

func (s *Server) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := s.data.createUser(req.Name, req.Email, req.Phone, req.Password, enums.RoleUser)
	if errors.Is(err, errEmailTaken) {
		return fail(c, http.StatusConflict, "User already exists with this email")
	}
	if err != nil {
		return err
	}

	return s.startSession(c, http.StatusCreated, "User registered successfully", user)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := s.data.authenticate(req.Email, req.Password)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}
	if user.Status == enums.UserStatusBlocked {
		return fail(c, http.StatusForbidden, "Your account is blocked")
	}

	return s.startSession(c, http.StatusOK, "User logged in successfully", user)
}

// refreshToken exchanges the refresh cookie for a new access token and
// rotates the cookie. It never looks at the Authorization header.
func (s *Server) refreshToken(c echo.Context) error {
	cookie, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return fail(c, http.StatusUnauthorized, "Refresh token not found")
	}

	userID, ok := s.data.rotate(cookie.Value)
	if !ok {
		s.clearRefreshCookie(c)
		return fail(c, http.StatusUnauthorized, "Invalid refresh token")
	}
	user, _ := s.data.user(userID)

	s.refreshes.Add(1)
	s.logger.Debug("access token refreshed", zap.String("user", user.ID))
	return s.startSession(c, http.StatusOK, "Access token refreshed", user)
}

func (s *Server) logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.RefreshCookieName); err == nil {
		s.data.revoke(cookie.Value)
	}
	s.clearRefreshCookie(c)
	return respond(c, http.StatusOK, "User logged out successfully", nil)
}

func (s *Server) startSession(c echo.Context, status int, message string, user models.UserProfile) error {
	token, err := s.issueAccessToken(user)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    s.data.grant(user.ID, s.cfg.RefreshTTL),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.cfg.RefreshTTL),
	})

	return respond(c, status, message, authResponse{User: user, AccessToken: token})
}

func (s *Server) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (s *Server) issueAccessToken(user models.UserProfile) (string, error) {
	now := time.Now()
	claims := middleware.SessionClaims{
		User:       user,
		Generation: s.generation.Load(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}
