package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"staybook/internal/auth"
	"staybook/internal/domain"
	"staybook/internal/pagination"
	"staybook/internal/service"
	"staybook/internal/storage"
)

// Options carries the collaborators of Handler.
type Options struct {
	Users    service.UserService
	Bookings service.BookingService
	Sessions *auth.Sessions
	// Storage receives profile pictures. Uploads are refused when nil.
	Storage          storage.Service
	PictureKeyPrefix string
	PageSize         int
	SecureCookies    bool
	Logger           *logrus.Logger
}

// Handler wires HTTP routes to the account services.
type Handler struct {
	users         service.UserService
	bookings      service.BookingService
	sessions      *auth.Sessions
	storage       storage.Service
	keyPrefix     string
	pageSize      int
	secureCookies bool
	logger        *logrus.Logger
}

func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultPageSize
	}
	return &Handler{
		users:         opts.Users,
		bookings:      opts.Bookings,
		sessions:      opts.Sessions,
		storage:       opts.Storage,
		keyPrefix:     opts.PictureKeyPrefix,
		pageSize:      opts.PageSize,
		secureCookies: opts.SecureCookies,
		logger:        opts.Logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	setupValidator()
	router.SetHTMLTemplate(templates)
	router.Use(requestLogger(h.logger), h.loadSession())

	router.GET("/", h.home)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	router.GET("/login", h.showLogin)
	router.POST("/login", h.loginCheck)
	router.GET("/logout", h.logout)
	router.GET("/register", h.register)
	router.POST("/register", h.register)

	account := router.Group("/account", h.requireRole(domain.RoleUser))
	{
		account.GET("", h.withUser(h.showAccountHome))
		account.GET("/profile", h.withUser(h.editProfile))
		account.POST("/profile", h.withUser(h.editProfile))
		account.GET("/password-update", h.withUser(h.updatePassword))
		account.POST("/password-update", h.withUser(h.updatePassword))
		account.GET("/bookings", h.withUser(h.listBookings))
	}

	admin := router.Group("/admin", h.requireRole(domain.RoleAdmin))
	{
		admin.GET("/users", h.withUser(h.adminUsers))
		admin.GET("/bookings", h.withUser(h.adminBookings))
	}
}

func (h *Handler) home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", gin.H{})
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": time.Since(start),
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	}
}
