package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/reflection"

	grpcrouter "github.com/dtroode/fuelsupply-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/fuelsupply-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/fuelsupply-server/internal/api/http/context"
	"github.com/dtroode/fuelsupply-server/internal/api/http/handler"
	httprouter "github.com/dtroode/fuelsupply-server/internal/api/http/router"
	httpserver "github.com/dtroode/fuelsupply-server/internal/api/http/server"
	"github.com/dtroode/fuelsupply-server/internal/botcheck/turnstile"
	"github.com/dtroode/fuelsupply-server/internal/config"
	"github.com/dtroode/fuelsupply-server/internal/document/pdf"
	"github.com/dtroode/fuelsupply-server/internal/events/kafka"
	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/mail/resend"
	"github.com/dtroode/fuelsupply-server/internal/model"
	"github.com/dtroode/fuelsupply-server/internal/payment/stripe"
	"github.com/dtroode/fuelsupply-server/internal/repository/postgres"
	"github.com/dtroode/fuelsupply-server/internal/repository/redis"
	"github.com/dtroode/fuelsupply-server/internal/server"
	"github.com/dtroode/fuelsupply-server/internal/service"
	"github.com/dtroode/fuelsupply-server/internal/storage/minio"
	"github.com/dtroode/fuelsupply-server/internal/token"
	"github.com/dtroode/fuelsupply-server/internal/tracing"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const healthCheckInterval = 15 * time.Second

// publisher is an event publisher that owns a connection.
type publisher interface {
	model.EventPublisher
	Close() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	shutdownTracing, err := tracing.Setup(ctx, tracing.Options{
		Enabled:     cfg.OTEL.Enabled,
		Endpoint:    cfg.OTEL.Endpoint,
		ServiceName: cfg.OTEL.ServiceName,
		Version:     buildVersion,
	})
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := redis.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err)
	}
	defer redisClient.Close()

	verifier, err := newTokenVerifier(ctx, cfg.JWT)
	if err != nil {
		logger.Fatal("failed to initialize token verifier", "error", err)
	}

	var storage model.Storage
	archive, err := minio.Connect(ctx, minio.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Warn("document archive disabled", "error", err)
	} else {
		storage = archive
	}

	var mailer model.Mailer
	if cfg.Mail.APIKey != "" {
		mailer = resend.NewMailer(cfg.Mail.APIKey, cfg.Mail.From, cfg.Mail.BCC)
	} else {
		logger.Warn("mail provider is not configured, emails will not be sent")
	}

	var bot model.BotVerifier
	if cfg.BotCheck.Secret != "" {
		bot = turnstile.NewVerifier(cfg.BotCheck.Secret, cfg.BotCheck.URL, cfg.BotCheck.Timeout)
	}

	events, err := newPublisher(cfg.Kafka, logger)
	if err != nil {
		logger.Fatal("failed to initialize event publisher", "error", err)
	}
	defer events.Close()

	sessionRepo := redis.NewSessionRepository(redisClient)
	accessRepo := postgres.NewAccessRepository(db)
	contractRepo := postgres.NewContractRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	identityService := service.NewIdentity(verifier, sessionRepo, cfg.Session.TTL, logger)
	accessService := service.NewAccess(accessRepo, sessionRepo, logger)
	documentService := service.NewDocument(pdf.NewRenderer("Fuel Supply"), mailer, storage, logger)
	contractService := service.NewContract(contractRepo, accessService, bot, documentService, events, cfg.Contract.TermsVersion, logger)
	payments := stripe.NewProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	orderService := service.NewOrder(orderRepo, accessService, payments, documentService, events, logger)

	router := httprouter.New(
		identityService,
		accessService,
		contractService,
		orderService,
		documentService,
		httpctx.NewManager(),
		httprouter.Options{
			Cookie:         handler.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
			AllowedOrigins: cfg.CORS.Origins,
		},
		logger,
	)
	httpServer := httpserver.NewHTTPServer(router.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	healthServer := health.NewServer()
	grpcServer := registerGRPCServer(healthServer, logger, fmt.Sprintf(":%s", cfg.GRPC.Port))
	go grpcserver.WatchDependencies(ctx, healthServer, healthCheckInterval, map[string]grpcserver.Check{
		"postgres": db.Ping,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}, logger)

	httpLayer := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	grpcLayer := server.NewSecurityLayer(false, "", "")

	servers := []struct {
		server model.Server
		layer  model.SecurityLayer
	}{
		{httpServer, httpLayer},
		{grpcServer, grpcLayer},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.server, s.layer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newTokenVerifier(ctx context.Context, cfg config.JWT) (model.TokenVerifier, error) {
	if cfg.JWKSURL != "" {
		jwks, err := token.NewJWKS(ctx, cfg.JWKSURL)
		if err != nil {
			return nil, err
		}
		return jwks, nil
	}
	return token.NewJWT(cfg.Secret), nil
}

func newPublisher(cfg config.Kafka, logger *logger.Logger) (publisher, error) {
	if len(cfg.Brokers) == 0 {
		logger.Warn("kafka brokers are not configured, lifecycle events are logged only")
		return kafka.NewLogPublisher(logger), nil
	}
	p, err := kafka.NewPublisher(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func registerGRPCServer(healthServer *health.Server, logger *logger.Logger, addr string) *grpcserver.GRPCServer {
	r := grpcrouter.New(healthServer, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcserver.NewGRPCServer(s, healthServer, addr)
}
