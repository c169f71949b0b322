package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staybook/internal/auth"
	"staybook/internal/domain"
	"staybook/internal/repository"
	"staybook/internal/service"
)

const currentUserKey = "currentUser"

// loadSession resolves the session cookie to a user. Anonymous requests pass through.
func (h *Handler) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := h.sessions.Parse(token)
		if err != nil {
			h.clearCookie(c, auth.SessionCookie)
			c.Next()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				h.clearCookie(c, auth.SessionCookie)
				c.Next()
				return
			}
			h.fail(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// requireRole rejects anonymous requests with a redirect to the login form
// and authenticated users lacking role with 403.
func (h *Handler) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if !user.HasRole(role) {
			h.render(c, http.StatusForbidden, "error.html", gin.H{
				"status":  http.StatusForbidden,
				"message": "You are not allowed to access this page.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// withUser hands the authenticated user to fn explicitly.
func (h *Handler) withUser(fn func(c *gin.Context, user *domain.User)) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		fn(c, user)
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// loginCheck authenticates the login form. Failures are remembered for the
// next rendering of the login page.
func (h *Handler) loginCheck(c *gin.Context) {
	email := c.PostForm("_username")
	password := c.PostForm("_password")

	user, err := h.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.WithField("username", email).Info("login rejected")
			state := auth.LoginState{Error: "Invalid credentials.", Username: email}
			h.setCookie(c, auth.LoginStateCookie, state.Encode(), 300)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.fail(c, err)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, auth.SessionCookie, token, int(h.sessions.TTL().Seconds()))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearCookie(c, auth.SessionCookie)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookies, true)
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}
