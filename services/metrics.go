package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics gom các collector của ứng dụng
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	ReservationLinks *prometheus.CounterVec
	RoomReloads      *prometheus.CounterVec
}

// NewMetrics tạo và đăng ký collector vào reg. reg = nil thì chỉ tạo, không đăng ký (dùng trong test).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentalsite",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rentalsite",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ReservationLinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentalsite",
			Name:      "reservation_links_total",
			Help:      "WhatsApp reservation links by target and result.",
		}, []string{"target", "result"}),
		RoomReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentalsite",
			Name:      "room_reloads_total",
			Help:      "Room store reloads by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.ReservationLinks, m.RoomReloads)
	}
	return m
}
