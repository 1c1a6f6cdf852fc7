package position

import (
	"errors"
	"sync"

	"chrono/core"

	"github.com/prometheus/client_golang/prometheus"
)

type operationMetrics struct {
	operations *prometheus.CounterVec
}

var (
	metricsOnce     sync.Once
	metricsRegistry *operationMetrics
)

func metrics() *operationMetrics {
	metricsOnce.Do(func() {
		metricsRegistry = &operationMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "chrono_position_operations_total",
				Help: "Count of position operations by outcome.",
			}, []string{"operation", "result"}),
		}
		prometheus.MustRegister(metricsRegistry.operations)
	})
	return metricsRegistry
}

func (m *operationMetrics) observe(operation string, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, result(err)).Inc()
}

func result(err error) string {
	if err == nil {
		return "ok"
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		return code.Message()
	}

	return "error"
}
