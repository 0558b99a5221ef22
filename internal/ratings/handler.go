package ratings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"movierec/internal/auth"
	"movierec/internal/catalog"
	"movierec/internal/live"
	"movierec/pkg/apperr"
)

type Handler struct {
	Repo    *Repo
	Catalog *catalog.Store
	Hub     *live.Hub
}

func NewHandler(repo *Repo, store *catalog.Store, hub *live.Hub) *Handler {
	return &Handler{Repo: repo, Catalog: store, Hub: hub}
}

// RegisterPublicRoutes exposes the per-movie aggregate.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/movies/:id/rating", h.summary)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/ratings/:movie_id", h.upsert)
	rg.GET("/ratings/:movie_id", h.getOwn)
}

type upsertReq struct {
	Rating int `json:"rating"`
}

func (h *Handler) upsert(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	movieID, err := strconv.Atoi(strings.TrimSpace(c.Param("movie_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}
	if _, ok := h.Catalog.ByID(movieID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := h.Repo.Upsert(c.Request.Context(), claims.UserID, movieID, req.Rating); err != nil {
		if errors.Is(err, apperr.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := live.Event{
			Type:    live.EventRatingSet,
			UserID:  claims.UserID,
			MovieID: movieID,
			Rating:  req.Rating,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusOK, gin.H{"movie_id": movieID, "rating": req.Rating})
}

func (h *Handler) getOwn(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	movieID, err := strconv.Atoi(strings.TrimSpace(c.Param("movie_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	rt, err := h.Repo.Get(c.Request.Context(), claims.UserID, movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if rt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not rated"})
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *Handler) summary(c *gin.Context) {
	movieID, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	sum, err := h.Repo.Summary(c.Request.Context(), movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	if sum == nil {
		// distinguishable absence, never "0.0 stars"
		c.JSON(http.StatusOK, gin.H{"movie_id": movieID, "rated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movie_id": sum.MovieID,
		"rated":    true,
		"average":  sum.Average,
		"count":    sum.Count,
	})
}
