// Package daemon provides the long-running ledger watcher: it re-imports the
// statement directory on an interval and serves the month's spending and
// chart over HTTP.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/budgetring/internal/chart"
	"github.com/theirongolddev/budgetring/internal/cli"
	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/logger"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/pipeline"
	"github.com/theirongolddev/budgetring/internal/render"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Load     pipeline.LoadOptions
	Category string
	// Month pins the reported month. Zero follows the calendar.
	Month        time.Time
	Chart        config.ChartConfig
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	// AllowOrigins enables CORS for browser dashboards. Empty disables it.
	AllowOrigins []string
}

// CategorySnapshot is one slice of the month.
type CategorySnapshot struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
}

// Snapshot is a compact spending state for status/event payloads.
type Snapshot struct {
	At           time.Time          `json:"at"`
	Month        string             `json:"month"`
	Transactions int                `json:"transactions"`
	Spent        float64            `json:"spent"`
	Refunds      float64            `json:"refunds"`
	SpendPerDay  float64            `json:"spend_per_day"`
	Budget       float64            `json:"budget,omitempty"`
	UsedPercent  float64            `json:"used_percent,omitempty"`
	Categories   []CategorySnapshot `json:"categories"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Transactions int     `json:"transactions"`
	Spent        float64 `json:"spent"`
	MonthChanged bool    `json:"month_changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 && d.Spent == 0 && !d.MonthChanged
}

// Event is emitted whenever the snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Ledger          string    `json:"ledger"`
	ImportDir       string    `json:"import_dir,omitempty"`
	Category        string    `json:"category,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg  Config
	load func(pipeline.LoadOptions) (*pipeline.Dataset, error)

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	series      []chart.Entry
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Chart.Size <= 0 {
		cfg.Chart = config.DefaultConfig().Chart
	}

	return &Service{
		cfg:       cfg,
		load:      func(o pipeline.LoadOptions) (*pipeline.Dataset, error) { return pipeline.Load(o, nil) },
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler builds the HTTP API.
func (s *Service) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(s.cfg.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.cfg.AllowOrigins
		corsConfig.AllowMethods = []string{http.MethodGet}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/healthz", s.handleHealth)
	v1 := router.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)
	v1.GET("/chart.svg", s.handleChart)
	return router
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("daemon listening", zap.String("addr", s.cfg.Addr), zap.Duration("interval", s.cfg.Interval))

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(time.Now())

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case now := <-ticker.C:
			s.pollOnce(now)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) month(now time.Time) time.Time {
	if !s.cfg.Month.IsZero() {
		return model.MonthStart(s.cfg.Month)
	}
	return model.MonthStart(now)
}

func (s *Service) pollOnce(now time.Time) {
	month := s.month(now)
	opts := s.cfg.Load
	opts.Month = month

	ds, err := s.load(opts)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		logger.Warn("daemon poll failed", zap.Error(err))
		return
	}

	txs := pipeline.FilterByCategory(ds.Transactions, s.cfg.Category)
	spends := pipeline.CategoryDeltas(txs, ds.Categories, month)
	since, until := pipeline.MonthRange(month)
	stats := pipeline.Aggregate(txs, since, until)
	budget := pipeline.AggregateBudget(txs, ds.Categories, month, now, opts.Config.Budget.MonthlyTotal)
	snap := snapshotFrom(stats, budget, spends, month, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.series = pipeline.Series(spends)
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "snapshot", Timestamp: now, Snapshot: snap}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "spending_delta", Timestamp: now, Snapshot: snap, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		logger.Debug("snapshot changed", zap.Int64("event", ev.ID), zap.Float64("spent", snap.Spent))
		s.publishEvent(ev)
	}
}

func snapshotFrom(stats model.SummaryStats, budget model.BudgetStats, spends []model.CategorySpend, month, at time.Time) Snapshot {
	snap := Snapshot{
		At:           at,
		Month:        month.Format("2006-01"),
		Transactions: stats.Transactions,
		Spent:        stats.TotalSpent,
		Refunds:      stats.TotalRefunds,
		SpendPerDay:  stats.SpendPerDay,
		Budget:       budget.Budget,
		UsedPercent:  budget.UsedPercent,
		Categories:   []CategorySnapshot{},
	}
	for _, cs := range spends {
		if cs.Spent <= 0 {
			continue
		}
		snap.Categories = append(snap.Categories, CategorySnapshot{
			Name:       cs.Category,
			Color:      render.ResolveColor(cs.Color),
			Spent:      cs.Spent,
			Percentage: cs.Share,
		})
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Transactions: curr.Transactions - prev.Transactions,
		Spent:        curr.Spent - prev.Spent,
		MonthChanged: curr.Month != prev.Month,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger := s.cfg.Load.DBPath
	switch {
	case s.cfg.Load.Demo:
		ledger = "demo"
	case ledger == "":
		ledger = pipeline.LedgerPath()
	}

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Ledger:          ledger,
		ImportDir:       s.cfg.Load.ImportDir,
		Category:        s.cfg.Category,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	s.mu.RLock()
	src := s.events
	if limit > 0 && limit < len(src) {
		src = src[len(src)-limit:]
	}
	events := make([]Event, len(src))
	copy(events, src)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, events)
}

func (s *Service) handleStream(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	c.SSEvent("snapshot", Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}

// handleChart renders the current month's donut. ?select=N draws the
// tooltip for the Nth segment.
func (s *Service) handleChart(c *gin.Context) {
	s.mu.RLock()
	series := s.series
	currency := s.cfg.Load.Config.Currency
	s.mu.RUnlock()

	cc := s.cfg.Chart
	donut, err := chart.NewDonut(chart.DonutOptions{
		Size:        cc.Size,
		StrokeWidth: cc.StrokeWidth,
		GapDegrees:  cc.GapDegrees,
		Tooltip: chart.TooltipPlacement{
			Box:     chart.TooltipBox{Width: cc.TooltipWidth, Height: cc.TooltipHeight},
			Padding: cc.TooltipPadding,
			Offset:  cc.TooltipOffset,
		},
	})
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if err := donut.SetSeries(series); err != nil {
		c.String(http.StatusNotFound, "no spending to chart: %v", err)
		return
	}

	opts := render.Options{Track: "#282726"}
	if raw := c.Query("select"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !donut.Select(n-1) {
			c.String(http.StatusBadRequest, "select: want 1..%d", len(donut.Segments()))
			return
		}
		seg, _ := donut.Selected()
		value := strconv.FormatFloat(seg.Value, 'f', 2, 64)
		if f, err := cli.NewCurrencyFormatter(currency.Code, currency.Locale); err == nil {
			value = f.FormatCurrency(seg.Value)
		}
		box := chart.TooltipBox{Width: cc.TooltipWidth, Height: cc.TooltipHeight}
		opts.Tooltip = render.TooltipFor(donut, box, value)
	}

	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := render.WriteSVG(c.Writer, donut.Segments(), donut.Geometry(), opts); err != nil {
		logger.Warn("writing chart", zap.Error(err))
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
