package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sedprefill/internal/eux"
	"sedprefill/internal/events"
	"sedprefill/internal/kodeverk"
	"sedprefill/internal/krav"
	"sedprefill/internal/pdl"
	"sedprefill/internal/pen"
	"sedprefill/internal/platform/config"
	"sedprefill/internal/platform/httpserver"
	"sedprefill/internal/platform/logger"
	platformredis "sedprefill/internal/platform/redis"
	"sedprefill/internal/prefill"
	prefillmetrics "sedprefill/internal/prefill/metrics"
	"sedprefill/internal/token"
	httptransport "sedprefill/internal/transport/http"
	"sedprefill/internal/trygdetid"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment)

	serviceToken := func(context.Context) (string, error) { return cfg.ServiceToken, nil }

	var persons pdl.Client = &pdl.MockClient{}
	if cfg.PDLBaseURL != "" {
		persons = pdl.NewHTTPClient(cfg.PDLBaseURL, serviceToken)
	}
	var pensions pen.Client = &pen.LocalClient{}
	if cfg.PENBaseURL != "" {
		pensions = pen.NewHTTPClient(cfg.PENBaseURL, serviceToken)
	}
	var cases eux.Client = &eux.MockClient{}
	if cfg.EUXBaseURL != "" {
		cases = eux.NewHTTPClient(cfg.EUXBaseURL, serviceToken)
	}

	resolver := kodeverk.NewStaticResolver()
	kravOpts := []krav.Option{}
	if country, ok := cfg.CaseOwnerCountryOverride(); ok {
		kravOpts = append(kravOpts, krav.WithCountryOverride(country))
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	var cache trygdetid.TimelineCache = trygdetid.NewMemoryStore(cfg.Redis.TimelineTTL)
	if redisClient != nil {
		cache = trygdetid.NewRedisStore(redisClient, cfg.Redis.TimelineTTL)
	}

	publisher := events.NewPublisher(256, log)
	kafkaClient, err := events.NewKafkaClient(cfg.Kafka)
	if err != nil {
		log.Error("kafka connection failed", "error", err)
		os.Exit(1)
	}

	metrics := prefillmetrics.New()
	prefillService, err := prefill.New(persons, pensions, cases, resolver,
		prefill.WithLogger(log),
		prefill.WithMetrics(metrics),
		prefill.WithEvents(publisher),
		prefill.WithKravComputer(krav.NewComputer(resolver, kravOpts...)),
	)
	if err != nil {
		log.Error("prefill service wiring failed", "error", err)
		os.Exit(1)
	}

	timelineService := trygdetid.New(cases,
		trygdetid.WithLogger(log),
		trygdetid.WithCache(cache),
	)

	var validator *token.ValidatorAdapter
	if cfg.JWTSigningKey != "" {
		validator = token.NewValidatorAdapter(token.NewValidator(cfg.JWTSigningKey))
	}

	deps := httptransport.Deps{
		Prefill:   prefillService,
		Trygdetid: timelineService,
		Logger:    log,
	}
	if validator != nil {
		deps.TokenValidator = validator
	}
	if redisClient != nil {
		deps.Health = append(deps.Health, redisClient)
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(deps))

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if kafkaClient != nil {
		worker := events.NewWorker(publisher.Inbox(), kafkaClient, cfg.Kafka.Topic, log)
		go func() {
			if err := worker.Run(rootCtx); err != nil {
				log.Error("event worker stopped", "error", err)
			}
		}()
	}

	log.Info("starting sedprefill", "addr", cfg.Addr, "env", cfg.Environment)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-rootCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if kafkaClient != nil {
		kafkaClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
