package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staybook/internal/domain"
	"staybook/internal/pagination"
)

func (h *Handler) pageConfig(c *gin.Context) pagination.Config {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = pagination.DefaultPage
	}
	return pagination.New(page, h.pageSize)
}

func (h *Handler) adminUsers(c *gin.Context, _ *domain.User) {
	page, err := h.users.ListPage(c.Request.Context(), h.pageConfig(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_users.html", gin.H{
		"page": page,
	})
}

func (h *Handler) adminBookings(c *gin.Context, _ *domain.User) {
	page, err := h.bookings.ListPage(c.Request.Context(), h.pageConfig(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_bookings.html", gin.H{
		"page": page,
	})
}
