package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	wsClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dotglobe_ws_clients",
		Help: "Connected websocket clients",
	})
	activeDots = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dotglobe_active_dots",
		Help: "Dots currently in the active state",
	})
	activateRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dotglobe_activate_requests_total",
		Help: "Total setActive entries received over websocket",
	})
	activateFailsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dotglobe_activate_fails_total",
		Help: "Total setActive entries rejected by the core",
	})
	broadcastDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dotglobe_broadcast_duration_ms",
		Help:    "State broadcast duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	})
)

func init() {
	prometheus.MustRegister(
		wsClients,
		activeDots,
		activateRequestsTotal,
		activateFailsTotal,
		broadcastDurationMs,
	)
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
