package search

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"refgallery/pkg/models"
)

type Handler struct {
	Agg *Aggregator
}

func NewHandler(agg *Aggregator) *Handler {
	return &Handler{Agg: agg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.search)                      // GET /search
	rg.GET("/submissions", h.submissionsOnly) // GET /search/submissions
}

func (h *Handler) search(c *gin.Context) {
	q := Query{
		Q:       c.Query("q"),
		Source:  c.DefaultQuery("source", SourceAll),
		Page:    parseInt(c.Query("page"), 1),
		PerPage: parseInt(c.Query("limit"), 20),
	}

	results := h.Agg.Search(c.Request.Context(), q)

	// total is the item count of this page, not a cross-page total; kept
	// that way deliberately so existing clients see the same numbers.
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"page":    q.Page,
		"total":   len(results),
	})
}

func (h *Handler) submissionsOnly(c *gin.Context) {
	q := Query{
		Q:       c.Query("q"),
		Source:  models.SourceSubmissions,
		Page:    parseInt(c.Query("page"), 1),
		PerPage: parseInt(c.Query("limit"), 20),
	}

	c.JSON(http.StatusOK, gin.H{
		"results": h.Agg.Search(c.Request.Context(), q),
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
