package dependency

import (
	"fmt"

	"github.com/roomkit/guesthistory/infrastructure/chat"
	"github.com/roomkit/guesthistory/infrastructure/metrics"
	"github.com/roomkit/guesthistory/infrastructure/metrics/exporters"
	"go.uber.org/zap"
)

func (c *Container) initInfrastructure() error {
	tracerProvider, err := exporters.InitJaegerExporter(c.Config)
	if err != nil {
		c.Logger.Error("failed to initialize Jaeger exporter", zap.Error(err))
		c.Logger.Warn("Using noop tracer provider as fallback")
	} else {
		c.TracerProvider = tracerProvider
		c.Logger.Info("Jaeger exporter initialized successfully",
			zap.String("endpoint", c.Config.Jaeger.Endpoint),
			zap.String("service", c.Config.Jaeger.ServiceName),
		)
	}

	meter := exporters.Prometheus(c.Config.Jaeger.ServiceName, c.Config.Jaeger.ServiceVersion)
	if meter == nil {
		return fmt.Errorf("failed to initialize Prometheus exporter")
	}

	c.MetricsManager = metrics.NewMetricsManager(meter, c.Logger)

	c.MetricsManager.NewGauge("app_go_routines", "Number of goroutines")
	c.MetricsManager.NewGauge("app_sys_memory_alloc", "Bytes allocated and in use")
	c.MetricsManager.NewGauge("app_go_numGC", "Number of completed GC cycles")

	c.MetricsManager.NewCounter("http_requests_total", "Total number of HTTP requests")
	c.MetricsManager.NewCounter("room_events_received", "Total webhook events received")
	c.MetricsManager.NewCounter("history_cards_sent", "Total history link cards posted")
	c.MetricsManager.NewCounter("guest_tokens_created", "Total guest tokens created")
	c.MetricsManager.NewHistogram("chat_api_request_duration_seconds", "Outbound chat API request duration in seconds",
		0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0)

	c.Logger.Info("Metrics initialized successfully")

	c.ChatAPI = chat.NewClient(c.Logger)

	return nil
}
