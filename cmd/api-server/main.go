package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"movierec/internal/auth"
	"movierec/internal/catalog"
	"movierec/internal/live"
	"movierec/internal/ratings"
	"movierec/internal/recs"
	"movierec/internal/reviews"
	"movierec/internal/tmdb"
	"movierec/internal/watchlist"
	"movierec/pkg/database"
	"movierec/pkg/utils"
)

func main() {
	cfg := utils.Load()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("db migrate failed", "error", err)
		os.Exit(1)
	}

	// Catalog and similarity matrix are loaded once; any inconsistency
	// between them aborts startup rather than corrupting per-request results.
	store, err := catalog.Load(cfg.Catalog.MoviesPath, cfg.Catalog.SimilarityPath)
	if err != nil {
		slog.Error("catalog load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "movies", store.Len())

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var posters *tmdb.Client
	if cfg.TMDB.APIKey != "" {
		posters = tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(requestID())

	hub := live.NewHub()
	router.GET("/ws", live.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": hub.Count(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"movies":     store.Len(),
			"ws_clients": hub.Count(),
		})
	})

	// Catalog (public)
	catalogHandler := catalog.NewHandler(store)
	catalogHandler.RegisterRoutes(router.Group("/movies"))

	if posters != nil {
		router.GET("/movies/:id/metadata", func(c *gin.Context) {
			m, ok := store.ByID(parseIntParam(c, "id"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
				return
			}
			c.JSON(http.StatusOK, posters.Metadata(c.Request.Context(), m.ID))
		})
	}

	// Recommendations (public)
	engine := recs.NewEngine(store)
	recsService := recs.NewService(engine, rdb)
	recsHandler := recs.NewHandler(recsService, posters, cfg.Catalog.TopK)
	recsHandler.RegisterRoutes(router.Group(""))

	// Auth
	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Engagement: reviews/comments read side is public, writes need identity.
	reviewsHandler := reviews.NewHandler(
		reviews.NewReviewRepo(db),
		reviews.NewCommentRepo(db),
		store,
		hub,
	)
	reviewsHandler.RegisterPublicRoutes(router.Group(""))

	ratingsHandler := ratings.NewHandler(ratings.NewRepo(db), store, hub)
	ratingsHandler.RegisterPublicRoutes(router.Group(""))

	// Protected routes
	protected := router.Group("/users")
	protected.Use(auth.AuthMiddleware(tokenSvc))

	protected.GET("/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		})
	})

	watchlistHandler := watchlist.NewHandler(watchlist.NewRepo(db), store, hub)
	watchlistHandler.RegisterRoutes(protected)
	ratingsHandler.RegisterProtectedRoutes(protected)
	reviewsHandler.RegisterProtectedRoutes(protected)

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API server listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		slog.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func parseIntParam(c *gin.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return -1
	}
	return n
}
