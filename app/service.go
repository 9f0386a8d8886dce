package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/autorange/api/trips"
	"github.com/kilianp07/autorange/api/vehicles"
	"github.com/kilianp07/autorange/config"
	"github.com/kilianp07/autorange/core/events"
	"github.com/kilianp07/autorange/core/fleet"
	"github.com/kilianp07/autorange/core/journal"
	coremetrics "github.com/kilianp07/autorange/core/metrics"
	coremon "github.com/kilianp07/autorange/core/monitoring"
	"github.com/kilianp07/autorange/infra/logger"
	"github.com/kilianp07/autorange/infra/metrics"
	inframon "github.com/kilianp07/autorange/infra/monitoring"
	"github.com/kilianp07/autorange/infra/mqtt"
	"github.com/kilianp07/autorange/internal/eventbus"
)

const consumerShutdown = 5 * time.Second

// Service wires the garage to its HTTP API, metrics sinks, trip journal and
// MQTT publisher.
type Service struct {
	Garage *fleet.Garage

	cfg       *config.Config
	bus       *eventbus.TypedBus[events.Event]
	sink      coremetrics.MetricsSink
	journal   journal.Store
	publisher *mqtt.Publisher
	server    *http.Server
	log       logger.Logger
	// consumers are closed once each bus consumer has stopped
	consumers []<-chan struct{}
}

// New creates a Service from the configuration and loads the configured fleet.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logg := logger.New("service")

	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	svc := &Service{cfg: cfg, bus: eventbus.NewTyped[events.Event](), sink: sink, log: logg}

	if !cfg.Journal.Disabled {
		store, err := journal.NewStore(cfg.Journal)
		if err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		svc.journal = store
	}

	if cfg.MQTT.Enabled() {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			svc.closeStores()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}

	svc.Garage = fleet.NewGarage(svc.bus, logger.New("garage"))
	svc.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}
	return svc, nil
}

// Handler returns the HTTP routes served by the service.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	api := vehicles.NewHandler(s.Garage)
	mux.Handle("/api/vehicles", api)
	mux.Handle("/api/vehicles/", api)
	mux.Handle("/api/fleet/", api)
	if s.journal != nil {
		mux.Handle("/api/trips", trips.NewHandler(s.journal, s.cfg.Server.Token))
	}
	if s.cfg.Metrics.HasSink("prometheus") && s.cfg.Server.MetricsAddr == "" {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run starts the consumers, loads the fleet and serves HTTP until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	// consumers subscribe before the fleet is loaded so they see every
	// vehicle, and run until Close closes the bus so events published while
	// the server drains are still handled
	consumeCtx := context.WithoutCancel(ctx)
	s.consumers = append(s.consumers, metrics.StartEventCollector(consumeCtx, s.bus, s.sink))
	if s.journal != nil {
		rec := journal.NewRecorder(s.journal, logger.New("journal"))
		rec.Start(consumeCtx, s.bus)
		s.consumers = append(s.consumers, rec.Done())
	}
	if s.publisher != nil {
		s.consumers = append(s.consumers, s.publisher.Start(consumeCtx, s.bus))
	}
	if err := s.Garage.Load(s.cfg.Fleet.Vehicles); err != nil {
		return fmt.Errorf("load fleet: %w", err)
	}
	s.log.Infof("fleet loaded with %d vehicles", s.Garage.Len())

	if s.cfg.Metrics.HasSink("prometheus") && s.cfg.Server.MetricsAddr != "" {
		coremon.Go("prom-server", func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Server.MetricsAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		})
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("serving API on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if n := s.bus.Dropped(); n > 0 {
		s.log.Warnf("%d events dropped by slow consumers", n)
	}
	s.bus.Close()
	s.waitConsumers(consumerShutdown)
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return s.closeStores()
}

// waitConsumers waits for the bus consumers to handle their queued events.
func (s *Service) waitConsumers(timeout time.Duration) {
	deadline := time.After(timeout)
	for _, done := range s.consumers {
		select {
		case <-done:
		case <-deadline:
			s.log.Warnf("bus consumers still running after %s", timeout)
			return
		}
	}
}

func (s *Service) closeStores() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}
