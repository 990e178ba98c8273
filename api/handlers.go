package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/InfraBits/trello-ics-shimmy/integrations"
	"github.com/InfraBits/trello-ics-shimmy/internal/config"
	"github.com/InfraBits/trello-ics-shimmy/internal/ics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Cfg     *config.Config
	Trello  *integrations.TrelloClient
	Builder *ics.Builder
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/c/:key", h.FeedHandler)
	router.GET("/a/:key", h.AuthorizeHandler)
	router.GET("/a/:key/token", h.TokenPageHandler)
	router.GET("/health", h.HealthCheckHandler)
}

// notFound answers exactly like an unknown route so that probing requests
// cannot confirm the endpoint exists.
func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Not Found")
}

// FeedHandler serves the ICS feed. The path carries the access secret with
// a mandatory .ics suffix, e.g. /c/<secret>.ics.
func (h *Handler) FeedHandler(c *gin.Context) {
	key, ok := strings.CutSuffix(c.Param("key"), ".ics")
	if !ok || key != h.Cfg.FeedSecret {
		notFound(c)
		return
	}

	payload, err := h.Builder.Build(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to build ICS feed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.Data(http.StatusOK, "text/calendar", []byte(payload))
}

// AuthorizeHandler starts the Trello authorization dance by redirecting the
// browser to Trello, which redirects back to the token page with the token
// in the URL fragment.
func (h *Handler) AuthorizeHandler(c *gin.Context) {
	key := c.Param("key")
	if key != h.Cfg.FeedSecret {
		notFound(c)
		return
	}

	if h.Cfg.APIToken != "" {
		c.String(http.StatusBadRequest, "Token already set")
		return
	}
	if h.Cfg.APIKey == "" {
		c.String(http.StatusInternalServerError, "Missing access key")
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	returnURL := fmt.Sprintf("%s://%s/a/%s/token", scheme, c.Request.Host, key)

	c.Redirect(http.StatusFound, h.Trello.AuthorizeURL(returnURL, h.Cfg.ProductName))
}

// tokenPage reads the token out of the URL fragment client-side. We cannot
// postMessage to a localhost URL, so the token is formatted for copying
// into the config file by hand; it never reaches the server.
const tokenPage = `<!doctype html>
    <html lang="en">
    <body></body>
    <script type="text/javascript">
        document.body.innerHTML = '<pre>' + window.location.hash.split('=')[1] + '</pre>';
    </script>
    </html>`

func (h *Handler) TokenPageHandler(c *gin.Context) {
	if c.Param("key") != h.Cfg.FeedSecret {
		notFound(c)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(tokenPage))
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
