package extractor

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Extractor *Extractor
}

func NewHandler(e *Extractor) *Handler {
	return &Handler{Extractor: e}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.extract) // POST /extract
}

type extractReq struct {
	URL string `json:"url"`
}

func (h *Handler) extract(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	result := h.Extractor.Extract(c.Request.Context(), req.URL)
	if !result.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract image from url"})
		return
	}
	c.JSON(http.StatusOK, result)
}
