// Package httpserver exposes a read-only HTTP API over the stats store.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
	"github.com/GoldenEggsUNION/mcsAna/internal/timestamp"
)

// QueryStore is the narrow store contract required by the HTTP API.
type QueryStore interface {
	model.StatsQuerier
}

// Server provides the HTTP API for querying stored day reports.
type Server struct {
	addr      string
	store     QueryStore
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, store QueryStore) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/dates", s.handleDates)
	r.GET("/api/reports/:date", s.handleReport)
	r.GET("/api/players/:name", s.handlePlayer)
	r.GET("/api/top", s.handleTop)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address, useful when the port was chosen by the
// listener.
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	rowCount, err := s.store.TotalRowCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(s.startTime).String(),
		"row_count": rowCount,
	})
}

func (s *Server) handleDates(c *gin.Context) {
	dates, err := s.store.Dates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (s *Server) handleReport(c *gin.Context) {
	date := c.Param("date")
	if !timestamp.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	stats, err := s.store.DayStats(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(stats) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
		return
	}

	rows := make([]gin.H, 0, len(stats))
	for _, ps := range stats {
		rows = append(rows, gin.H{
			"player":         ps.Player,
			"online_seconds": ps.OnlineSeconds,
			"online_minutes": ps.OnlineMinutes(),
			"online_hours":   ps.OnlineHours(),
			"commands":       ps.Commands,
		})
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "rows": rows})
}

func (s *Server) handlePlayer(c *gin.Context) {
	name := c.Param("name")

	totals, found, err := s.store.PlayerTotals(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown player"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player":         totals.Player,
		"online_seconds": totals.OnlineSeconds,
		"commands":       totals.Commands,
		"days":           totals.Days,
	})
}

func (s *Server) handleTop(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1..1000"})
			return
		}
		limit = n
	}

	top, err := s.store.TopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if top == nil {
		top = []model.PlayerTotals{}
	}
	c.JSON(http.StatusOK, gin.H{"players": top})
}
