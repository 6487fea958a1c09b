package orn

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Layr-Labs/bls-oracle/common/logging"
)

const (
	Namespace = "oracle_node"
)

type Metrics struct {
	SyncedHeight     prometheus.Gauge
	BatchesIngested  prometheus.Counter
	BatchesDiscarded prometheus.Counter
	EventsIngested   prometheus.Counter
	EventsProcessed  prometheus.Counter
	HandlerErrors    prometheus.Counter
	CommitteeSize    prometheus.Gauge

	logger   *logging.Logger
	registry *prometheus.Registry
}

func NewMetrics(logger *logging.Logger) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())

	metrics := &Metrics{
		SyncedHeight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "synced_height",
				Help:      "last fully persisted block height",
			},
		),
		BatchesIngested: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "batches_ingested",
				Help:      "the total number of header batches persisted",
			},
		),
		BatchesDiscarded: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "batches_discarded",
				Help:      "the total number of batches discarded for reorg or provider inconsistency",
			},
		),
		EventsIngested: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "events_ingested",
				Help:      "the total number of registry events mirrored from the chain",
			},
		),
		EventsProcessed: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "events_processed",
				Help:      "the total number of registry events applied to the roster",
			},
		),
		HandlerErrors: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "handler_errors",
				Help:      "the total number of events skipped due to handler failures",
			},
		),
		CommitteeSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "committee_size",
				Help:      "mirrored count of active committee members",
			},
		),
		logger:   logger,
		registry: reg,
	}

	return metrics
}

func (g *Metrics) Start(httpPort string) {
	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(
			g.registry,
			promhttp.HandlerOpts{},
		))
		err := http.ListenAndServe(httpPort, nil)
		g.logger.Error().Err(err).Msg("Prometheus server failed")
	}()
}
