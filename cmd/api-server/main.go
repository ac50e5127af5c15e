package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"refgallery/internal/analytics"
	"refgallery/internal/extractor"
	"refgallery/internal/providers"
	"refgallery/internal/search"
	"refgallery/internal/submissions"
	"refgallery/pkg/database"
	"refgallery/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	// Extraction
	var scanner extractor.MetaScanner
	if cfg.MetaScanMode == "dom" {
		scanner = extractor.DOMScanner{}
	}
	ex := extractor.New(extractor.Config{
		Timeout: cfg.HTTPTimeout,
		Scanner: scanner,
	})
	extractor.NewHandler(ex).RegisterRoutes(router.Group("/extract"))

	// Submissions (local content store + moderation)
	subRepo := submissions.NewRepo(db)
	subHandler := submissions.NewHandler(subRepo, ex)
	subHandler.RegisterRoutes(router.Group("/submissions"))
	subHandler.RegisterAdminRoutes(router.Group("/admin"))

	// Search: local store plus external providers, analytics on the side
	recorder := analytics.NewRecorder(db, 256)
	agg := search.NewAggregator(subRepo, recorder,
		providers.NewUnsplash(cfg.UnsplashAccessKey, cfg.HTTPTimeout),
		providers.NewPexels(cfg.PexelsAPIKey, cfg.HTTPTimeout),
	)
	search.NewHandler(agg).RegisterRoutes(router.Group("/search"))

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on :%s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	// flush pending analytics before the db closes
	recorder.Close()
	log.Println("server stopped")
}
