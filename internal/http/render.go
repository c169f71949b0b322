package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
	"datetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
	"money": func(amount float64) string {
		return formatMoney(amount)
	},
}).ParseFS(templateFS, "templates/*.html"))

// render executes the named template with the current user and the flashes
// due on this page added to data.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["currentUser"] = currentUser(c)
	data["flashes"] = h.takeFlashes(c)
	c.HTML(status, name, data)
}

// fail logs err and answers with the generic error page.
func (h *Handler) fail(c *gin.Context, err error) {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("request failed")
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"status":  http.StatusInternalServerError,
		"message": "Something went wrong, please try again later.",
	})
}
