package submissions

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"refgallery/pkg/models"
)

// ImageExtractor resolves a source page URL into an image. Implemented by
// the extractor package; an interface here so handler tests need no
// network.
type ImageExtractor interface {
	Extract(ctx context.Context, rawURL string) models.ExtractionResult
}

type Handler struct {
	Repo      *Repo
	Extractor ImageExtractor
}

func NewHandler(repo *Repo, ex ImageExtractor) *Handler {
	return &Handler{Repo: repo, Extractor: ex}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)        // GET /submissions
	rg.GET("/:id", h.getByID) // GET /submissions/:id
	rg.POST("", h.create)     // POST /submissions
}

// RegisterAdminRoutes adds the moderation surface. Authentication is
// handled outside this service.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.stats)
	rg.GET("/submissions/pending", h.pending)
	rg.PUT("/submissions/:id/approve", h.approve)
	rg.PUT("/submissions/:id/reject", h.reject)
}

func (h *Handler) list(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 20)
	if page < 1 {
		page = 1
	}

	subs, err := h.Repo.FindApproved(c.Request.Context(), "", (page-1)*limit, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

func (h *Handler) getByID(c *gin.Context) {
	sub, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub})
}

type createReq struct {
	SourceURL string   `json:"source_url"`
	Title     string   `json:"title"`
	Credits   string   `json:"credits"`
	Tags      []string `json:"tags"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.SourceURL) == "" || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_url and title are required"})
		return
	}

	extracted := h.Extractor.Extract(c.Request.Context(), req.SourceURL)
	if !extracted.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract image from url"})
		return
	}

	sub, err := h.Repo.Create(c.Request.Context(), CreateInput{
		Title:          req.Title,
		ImageURL:       extracted.ImageURL,
		SourceURL:      req.SourceURL,
		SourcePlatform: extracted.Platform,
		Credits:        req.Credits,
		Tags:           req.Tags,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": sub})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Repo.CountByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) pending(c *gin.Context) {
	subs, err := h.Repo.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

func (h *Handler) approve(c *gin.Context) {
	h.setStatus(c, models.StatusApproved, "")
}

type rejectReq struct {
	Reason string `json:"reason"`
}

func (h *Handler) reject(c *gin.Context) {
	var req rejectReq
	_ = c.ShouldBindJSON(&req)
	h.setStatus(c, models.StatusRejected, req.Reason)
}

func (h *Handler) setStatus(c *gin.Context, status, reason string) {
	ok, err := h.Repo.SetStatus(c.Request.Context(), c.Param("id"), status, reason)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
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
