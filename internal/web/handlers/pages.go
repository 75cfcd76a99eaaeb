package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/comeback-api/pkg/embedded"
	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	page []byte
}

func NewWebHandler() *WebHandler {
	return &WebHandler{page: embedded.IndexHTML}
}

// Home serves the browser page that drives /api/generate
func (h *WebHandler) Home(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.page)
}
