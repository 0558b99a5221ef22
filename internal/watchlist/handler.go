package watchlist

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"movierec/internal/auth"
	"movierec/internal/catalog"
	"movierec/internal/live"
)

type Handler struct {
	Repo    *Repo
	Catalog *catalog.Store
	Hub     *live.Hub
}

func NewHandler(repo *Repo, store *catalog.Store, hub *live.Hub) *Handler {
	return &Handler{Repo: repo, Catalog: store, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/watchlist", h.list)
	rg.POST("/watchlist", h.add)
	rg.DELETE("/watchlist/:movie_id", h.remove)
	rg.GET("/watchlist/:movie_id", h.contains)
}

type addReq struct {
	MovieID int `json:"movie_id"`
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	// The watchlist row snapshots the title, and a movie outside the
	// catalog has nothing to snapshot.
	m, ok := h.Catalog.ByID(req.MovieID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}

	added, err := h.Repo.Add(c.Request.Context(), claims.UserID, m.ID, m.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if !added {
		c.JSON(http.StatusConflict, gin.H{"error": "already in watchlist", "added": false})
		return
	}

	if h.Hub != nil {
		ev := live.Event{
			Type:    live.EventWatchlistAdd,
			UserID:  claims.UserID,
			MovieID: m.ID,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusCreated, gin.H{"added": true, "movie_id": m.ID, "movie_title": m.Title})
}

func (h *Handler) remove(c *gin.Context) {
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

	removed, err := h.Repo.Remove(c.Request.Context(), claims.UserID, movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	if removed && h.Hub != nil {
		ev := live.Event{
			Type:    live.EventWatchlistRemove,
			UserID:  claims.UserID,
			MovieID: movieID,
			At:      time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	// Removing an absent entry is still a success.
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) contains(c *gin.Context) {
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

	in, err := h.Repo.Contains(c.Request.Context(), claims.UserID, movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movie_id": movieID, "in_watchlist": in})
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.Repo.List(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total": len(entries),
		"items": entries,
	})
}
