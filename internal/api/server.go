// Package api exposes the renovation book over HTTP with gin.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/events"
	"github.com/promphitak-p/praweena/internal/notify"
	"github.com/promphitak-p/praweena/internal/services/issue"
	"github.com/promphitak-p/praweena/internal/services/purchase"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/storage"
)

// FileStore uploads and deletes property files
type FileStore interface {
	UploadAll(ctx context.Context, propertyID uuid.UUID, files []storage.File) ([]*storage.Uploaded, error)
	Delete(ctx context.Context, keyOrURL string) error
}

// Deps are the services the handlers call
type Deps struct {
	Todos     todo.Service
	Purchases purchase.Service
	Issues    issue.Service
	Events    events.Subscriber
	Files     FileStore
	Pusher    notify.Pusher

	JWTSecret      string
	AllowedOrigins []string
	Public         config.PublicConfig
	// Heartbeat is the SSE keep-alive interval; zero means 25s
	Heartbeat time.Duration
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	registerValidators()
	if d.Heartbeat <= 0 {
		d.Heartbeat = 25 * time.Second
	}
	h := &handler{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), cors.New(corsConfig(d.AllowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/env.js", h.envJS)
	r.POST("/notify/line", h.notifyLine)

	api := r.Group("/api", Auth(d.JWTSecret))

	api.GET("/categories", h.listCategories)
	api.POST("/categories", h.createCategory)
	api.PATCH("/categories/:id", h.updateCategory)

	props := api.Group("/properties/:propertyID")
	props.GET("/todos", h.listTodos)
	props.POST("/todos", h.createTodo)
	props.PUT("/todos/order", h.reorderGroup)
	props.POST("/todos/defaults", h.generateDefaults)
	props.GET("/views/:view", h.buildView)
	props.GET("/purchases", h.listPropertyPurchases)
	props.GET("/purchases/summary", h.purchaseSummary)
	props.GET("/purchases/export.csv", h.exportPurchases)
	props.GET("/issues", h.listIssues)
	props.POST("/issues", h.createIssue)
	props.GET("/phase-settings", h.getPhaseSettings)
	props.PUT("/phase-settings", h.putPhaseSettings)
	props.GET("/events", h.stream)
	props.POST("/files", h.uploadFiles)

	todos := api.Group("/todos/:id")
	todos.GET("", h.getTodo)
	todos.PATCH("", h.updateTodo)
	todos.DELETE("", h.deleteTodo)
	todos.POST("/status", h.setStatus)
	todos.POST("/cancel", h.cancelTodo)
	todos.POST("/move", h.moveTodo)
	todos.POST("/dependencies", h.addDependency)
	todos.DELETE("/dependencies/:dependsOn", h.removeDependency)
	todos.GET("/purchases", h.listTodoPurchases)

	api.POST("/purchases", h.upsertPurchase)
	api.POST("/purchases/:id/status", h.setPurchaseStatus)
	api.DELETE("/purchases/:id", h.deletePurchase)

	api.POST("/issues/:id/resolve", h.resolveIssue)
	api.DELETE("/issues/:id", h.deleteIssue)

	api.DELETE("/files", h.deleteFile)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Serve runs the router until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, addr string, router http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// uuidParam parses a path parameter, answering 400 when malformed
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
