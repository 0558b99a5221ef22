package reviews

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
	Reviews  *Repo
	Comments *Repo
	Catalog  *catalog.Store
	Hub      *live.Hub
}

func NewHandler(reviews, comments *Repo, store *catalog.Store, hub *live.Hub) *Handler {
	return &Handler{Reviews: reviews, Comments: comments, Catalog: store, Hub: hub}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/movies/:id/reviews", h.listFor(h.Reviews))
	rg.GET("/movies/:id/comments", h.listFor(h.Comments))
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.createFor(h.Reviews, live.EventReviewNew))
	rg.POST("/comments", h.createFor(h.Comments, live.EventCommentNew))
}

type createReq struct {
	MovieID int    `json:"movie_id"`
	Text    string `json:"text"`
}

func (h *Handler) createFor(repo *Repo, eventType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		if _, ok := h.Catalog.ByID(req.MovieID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}

		post, err := repo.Create(c.Request.Context(), claims.UserID, req.MovieID, strings.TrimSpace(req.Text))
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidArgument) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
			return
		}

		if h.Hub != nil {
			ev := live.Event{
				Type:    eventType,
				UserID:  claims.UserID,
				MovieID: req.MovieID,
				At:      time.Now().UTC(),
			}
			go h.Hub.BroadcastJSON(ev)
		}

		c.JSON(http.StatusCreated, post)
	}
}

func (h *Handler) listFor(repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
			return
		}

		limit := parseInt(c.Query("limit"), 20)
		offset := parseInt(c.Query("offset"), 0)

		items, err := repo.ListByMovie(c.Request.Context(), movieID, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":  limit,
			"offset": offset,
			"items":  items,
		})
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
