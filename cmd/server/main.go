package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndiaye-labs/gatepass/config"
	"github.com/ndiaye-labs/gatepass/internal/catalog"
	"github.com/ndiaye-labs/gatepass/internal/clock"
	deliveryHttp "github.com/ndiaye-labs/gatepass/internal/delivery/http"
	"github.com/ndiaye-labs/gatepass/internal/delivery/kafka/producer"
	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/internal/idgen"
	infraRedis "github.com/ndiaye-labs/gatepass/internal/infra/redis"
	"github.com/ndiaye-labs/gatepass/internal/ledger"
	"github.com/ndiaye-labs/gatepass/internal/qrcode"
	repo "github.com/ndiaye-labs/gatepass/internal/repository/redis"
	"github.com/ndiaye-labs/gatepass/internal/service"
	"github.com/ndiaye-labs/gatepass/internal/ticket"
	"github.com/ndiaye-labs/gatepass/internal/validation"
	pkgKafka "github.com/ndiaye-labs/gatepass/pkg/kafka"
	pkgLog "github.com/ndiaye-labs/gatepass/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})

	// Durable mirror: optional, the engine stays authoritative without it.
	repository := repo.NewNoopRepository()
	if cfg.Redis.Enabled {
		redisCli, err := infraRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
		}
		defer infraRedis.Disconnect(redisCli)
		repository = repo.NewRedisRepository(redisCli, l)
	}

	// Notification events: optional as well.
	prod := producer.NewNoopProducer()
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}
		prod = producer.NewProducer(kafkaSyncProd, l)
	}
	defer func() {
		if err := prod.Close(); err != nil {
			l.Errorf(ctx, "Failed to close Kafka producer: %v", err)
		}
	}()

	event := domain.EventInfo{
		Artist:   cfg.Event.Artist,
		Venue:    cfg.Event.Venue,
		Location: cfg.Event.Location,
		Date:     cfg.Event.Date,
		Time:     cfg.Event.Time,
	}

	clk := clock.NewSystem()
	cat := catalog.NewDefault()
	factory := ticket.NewFactory(idgen.New(), cat, qrcode.NewEncoder(event), clk)
	engine := validation.NewEngine(clk, l)
	ldg := ledger.New()

	gate := service.NewGateService(factory, engine, ldg, cat, repository, prod, l)

	handler := deliveryHttp.NewHTTPHandler(gate, l)
	auth := deliveryHttp.NewAuthMiddleware(cfg.JWT, l)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      handler.Routes(auth),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Infof(ctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			l.Infof(ctx, "Received signal %v, shutting down...", sig)
		case <-gCtx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Fatalf(ctx, "Server error: %v", err)
	}

	l.Infof(ctx, "Server stopped gracefully")
}
