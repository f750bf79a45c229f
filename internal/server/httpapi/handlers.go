package httpapi

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/resumekeeper/internal/common"
	"github.com/skillforge/resumekeeper/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if _, err := s.accounts.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	token, err := s.accounts.Login(c.Request.Context(), c.ClientIP(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (s *Server) handleProfile(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	account, err := s.accounts.GetProfile(c.Request.Context(), identity.AccountID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (s *Server) handleUpdate(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Update failed"})
		return
	}

	account, err := s.accounts.UpdateProfile(c.Request.Context(), identity.AccountID, &update)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// setSessionCookie mirrors the token validity: HttpOnly, SameSite=Strict,
// Secure in production.
func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(s.tokens.Validity().Seconds()), "/", "", s.secureCookies, true)
}

// writeError translates the error taxonomy to the HTTP contract. Internal
// errors are logged with context and surfaced as a generic message.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		verr    *common.ValidationError
		locked  *common.AccountLockedError
		limited *common.RateLimitedError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(verr)})
	case errors.Is(err, common.ErrDuplicateAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
	case errors.Is(err, common.ErrInvalidCredentials):
		// Deliberately the same wording for unknown user and wrong password.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.As(err, &locked):
		retryAfter := int(math.Ceil(locked.Remaining(s.clock.Now()).Seconds()))
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusForbidden, gin.H{"message": "Account temporarily locked. Try again later."})
	case errors.As(err, &limited):
		retryAfter := int(math.Ceil(limited.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many attempts. Try later.", "retryAfter": retryAfter})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
	}
}

func validationMessage(err *common.ValidationError) string {
	if err.Field == "username" {
		return "Username must be 4-20 characters and contain only letters, numbers, or underscores."
	}
	return "Password must contain uppercase, number, special character, and be at least 16 characters long."
}
