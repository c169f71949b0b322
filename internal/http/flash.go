package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "staybook_flash"
	flashKey    = "pendingFlashes"
)

// Flash is a one time notice shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (h *Handler) addFlash(c *gin.Context, level, message string) {
	c.Set(flashKey, append(pendingFlashes(c), Flash{Level: level, Message: message}))
}

func pendingFlashes(c *gin.Context) []Flash {
	v, ok := c.Get(flashKey)
	if !ok {
		return nil
	}
	flashes, _ := v.([]Flash)
	return flashes
}

// redirect carries pending flashes over the redirect in a cookie.
func (h *Handler) redirect(c *gin.Context, location string) {
	if pending := pendingFlashes(c); len(pending) > 0 {
		h.setCookie(c, flashCookie, encodeFlashes(pending), 300)
		c.Set(flashKey, nil)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// takeFlashes returns flashes stored by a previous redirect plus those added
// during this request, and clears both.
func (h *Handler) takeFlashes(c *gin.Context) []Flash {
	var flashes []Flash
	if raw, err := c.Cookie(flashCookie); err == nil && raw != "" {
		flashes = append(flashes, decodeFlashes(raw)...)
		h.clearCookie(c, flashCookie)
	}
	flashes = append(flashes, pendingFlashes(c)...)
	c.Set(flashKey, nil)
	return flashes
}

func encodeFlashes(flashes []Flash) string {
	raw, _ := json.Marshal(flashes)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeFlashes(value string) []Flash {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
