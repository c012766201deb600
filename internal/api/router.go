// Package api serves adherence summaries and check-ins over HTTP.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/config"
	"github.com/julianstephens/adhere/internal/logger"
	"github.com/julianstephens/adhere/internal/models"
	"github.com/julianstephens/adhere/internal/tracker"
)

// Tracker is the part of tracker.Service the API needs.
type Tracker interface {
	CheckIn(ctx context.Context, subjectID, treatmentType, day string, checkedIn bool) (models.Checkin, error)
	Options() adherence.Options
	SummaryWithOptions(ctx context.Context, subjectID, treatmentType string, opts adherence.Options) (adherence.Summary, error)
	Treatments(ctx context.Context, subjectID string, includeArchived bool) ([]models.Treatment, error)
	Overview(ctx context.Context, subjectID string) ([]tracker.TreatmentSummary, error)
	History(ctx context.Context, subjectID, treatmentType string, windowDays int) ([]models.Checkin, error)
	Reset(ctx context.Context, subjectID string) (int64, error)
}

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

type handler struct {
	tracker Tracker
	db      Pinger
	log     *log.Logger
}

// NewRouter wires middleware and routes. db may be nil, in which case the
// health check does not probe storage.
func NewRouter(t Tracker, db Pinger, cfg config.ServerConfig) *gin.Engine {
	switch strings.ToLower(cfg.Mode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	h := &handler{tracker: t, db: db, log: logger.With("component", "api")}

	r := gin.New()
	r.Use(recovery(h.log))
	r.Use(requestLogger(h.log))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(rateLimit(cfg.RateLimitPerMinute))

	r.GET("/healthz", h.health)

	v1 := r.Group("/api/v1/subjects/:subject")
	{
		v1.GET("/treatments", h.listTreatments)
		v1.GET("/overview", h.overview)
		v1.GET("/treatments/:treatment/summary", h.summary)
		v1.GET("/treatments/:treatment/checkins", h.history)
		v1.PUT("/treatments/:treatment/checkins/:date", h.checkIn)
		v1.DELETE("/checkins", h.reset)
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, CodeNotFound, "route not found")
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case len(origins) == 0, len(origins) == 1 && origins[0] == "*":
		cfg.AllowAllOrigins = true
	default:
		cfg.AllowOrigins = origins
	}
	return cfg
}
