// Package health reports whether the bookstore's backing store answers.
package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const pingTimeout = 2 * time.Second

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Pinger is satisfied by *pgxpool.Pool, the mongo client and the memory stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Report is the JSON body of /healthz and /readyz. Store fields are empty for
// liveness, which never touches the store.
type Report struct {
	Status    Status `json:"status"`
	Store     string `json:"store,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r Report) Up() bool { return r.Status == StatusUp }

type Checker struct {
	driver string
	store  Pinger
	logger *slog.Logger
	up     *prometheus.GaugeVec
}

// NewChecker registers bookstore_health_check_up{dependency=driver} on reg.
func NewChecker(driver string, store Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	up := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bookstore",
		Name:      "health_check_up",
		Help:      "1 if the store answered the last readiness ping, 0 otherwise.",
	}, []string{"dependency"})
	reg.MustRegister(up)

	return &Checker{
		driver: driver,
		store:  store,
		logger: logger.With("component", "health", "store", driver),
		up:     up,
	}
}

func (c *Checker) Liveness(context.Context) Report {
	return Report{Status: StatusUp}
}

// Readiness pings the store with a short deadline.
func (c *Checker) Readiness(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := c.store.Ping(ctx)
	rep := Report{
		Status:    StatusUp,
		Store:     c.driver,
		LatencyMS: time.Since(start).Milliseconds(),
	}

	if err != nil {
		c.logger.WarnContext(ctx, "store ping failed", "error", err)
		rep.Status = StatusDown
		rep.Error = err.Error()
		c.up.WithLabelValues(c.driver).Set(0)
		return rep
	}
	c.up.WithLabelValues(c.driver).Set(1)
	return rep
}
