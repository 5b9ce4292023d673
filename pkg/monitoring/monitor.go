package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - набор метрик приложения на собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	QuizQuestions   *prometheus.CounterVec
	QuizExhausted   prometheus.Counter
}

// New создает и регистрирует метрики
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		QuizQuestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_questions_served_total",
				Help: "Number of quiz questions served, by resolved category",
			},
			[]string{"category"},
		),
		QuizExhausted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quiz_exhausted_total",
				Help: "Number of quiz turns that found no eligible question left",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.QuizQuestions,
		m.QuizExhausted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveQuizQuestion учитывает выданный вопрос викторины. categoryID == 0 - все категории.
func (m *Metrics) ObserveQuizQuestion(categoryID uint) {
	label := "all"
	if categoryID != 0 {
		label = strconv.FormatUint(uint64(categoryID), 10)
	}
	m.QuizQuestions.WithLabelValues(label).Inc()
}

// ObserveQuizExhausted учитывает ход викторины, на котором вопросы закончились
func (m *Metrics) ObserveQuizExhausted() {
	m.QuizExhausted.Inc()
}

// MetricsMiddleware считает запросы и их длительность по шаблону маршрута
func (m *Metrics) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		duration := time.Since(start).Seconds()

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

// PrometheusHandler отдает метрики в формате exposition
func (m *Metrics) PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
