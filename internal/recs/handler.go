package recs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"movierec/internal/tmdb"
	"movierec/pkg/apperr"
)

type Handler struct {
	Service *Service
	Posters *tmdb.Client // nil skips poster resolution
	TopK    int          // default result size when the caller omits k
}

func NewHandler(service *Service, posters *tmdb.Client, topK int) *Handler {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Handler{Service: service, Posters: posters, TopK: topK}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations", h.recommend)
	rg.GET("/movies/:id/recommendations", h.recommendByID)
}

type recItem struct {
	MovieID   int     `json:"movie_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	PosterURL string  `json:"poster_url,omitempty"`
}

func (h *Handler) recommend(c *gin.Context) {
	title := c.Query("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}
	h.respond(c, title)
}

func (h *Handler) recommendByID(c *gin.Context) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	m, ok := h.Service.Engine.Catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found", "items": []recItem{}})
		return
	}
	h.respond(c, m.Title)
}

func (h *Handler) respond(c *gin.Context, title string) {
	k := h.TopK
	if raw := strings.TrimSpace(c.Query("k")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be between 1 and 50"})
			return
		}
		k = n
	}

	recs, err := h.Service.Recommend(c.Request.Context(), title, k)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found", "items": []recItem{}})
		case errors.Is(err, apperr.ErrDataIntegrity):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog inconsistent"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "recommend failed"})
		}
		return
	}

	items := make([]recItem, 0, len(recs))
	for _, r := range recs {
		it := recItem{MovieID: r.MovieID, Title: r.Title, Score: r.Score}
		if h.Posters != nil {
			it.PosterURL = h.Posters.PosterURL(c.Request.Context(), r.MovieID)
		}
		items = append(items, it)
	}

	c.JSON(http.StatusOK, gin.H{
		"title": title,
		"k":     k,
		"items": items,
	})
}
