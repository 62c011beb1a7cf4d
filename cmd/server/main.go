package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumina/backend/internal/config"
	"github.com/lumina/backend/internal/fallback"
	"github.com/lumina/backend/internal/handler"
	"github.com/lumina/backend/internal/logging"
	"github.com/lumina/backend/internal/metrics"
	"github.com/lumina/backend/internal/notify"
	"github.com/lumina/backend/internal/ratelimit"
	"github.com/lumina/backend/internal/repository"
	"github.com/lumina/backend/internal/service"
	"github.com/lumina/backend/pkg/cloudinary"
	"github.com/lumina/backend/pkg/gmail"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)
	site := cfg.Site

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	// DB への接続は初回利用時まで遅延する。起動時に DB が落ちていてもフォールバックで応答する
	db := repository.NewConnector(cfg.DatabaseURL, cfg.DBConnectTimeout)
	defer db.Close()

	store, err := fallback.NewSeededStore()
	if err != nil {
		logging.Fatal("failed to load fallback seed", "error", err)
	}

	mailer, err := gmail.NewClient(gmail.Config{
		User:         cfg.Gmail.User,
		ClientID:     cfg.Gmail.ClientID,
		ClientSecret: cfg.Gmail.ClientSecret,
		RefreshToken: cfg.Gmail.RefreshToken,
		FromName:     site.Name,
	})
	if err != nil {
		logging.Fatal("failed to configure mailer", "error", err)
	}

	// Telegram は任意。失敗してもメール通知だけで起動を続ける
	var pinger notify.Pinger
	if cfg.Telegram.Enabled() {
		tp, err := notify.NewTelegramPinger(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			slog.Warn("telegram disabled", "error", err)
		} else {
			pinger = tp
		}
	}
	notifier := notify.NewDispatcher(mailer, site.ContactEmail, pinger)

	bookingService := service.NewBookingService(
		repository.NewPgBookingRepository(db),
		store,
		notifier,
		service.Studio{Name: site.Name, WhatsAppNumber: site.WhatsAppNumber},
		m,
	)
	contactService := service.NewContactService(notifier, m)

	cdn := cloudinary.NewClient(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})
	galleryService := service.NewGalleryService(
		repository.NewPgGalleryRepository(db),
		store,
		cdn,
		m,
		cfg.UseFallbackGalleries,
	)

	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		rc, err := ratelimit.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logging.Fatal("invalid REDIS_URL", "error", err)
		}
		defer rc.Close()
		rl := ratelimit.NewRedis(rc, cfg.RateLimitPerMinute, time.Minute)
		if err := rl.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, rate limiting fails open until it recovers", "error", err)
		}
		limiter = rl
	} else {
		mem := ratelimit.NewMemory(cfg.RateLimitPerMinute, time.Minute)
		go mem.Run(ctx, 5*time.Minute)
		limiter = mem
	}

	whatsAppHandler, err := handler.NewWhatsAppHandler(site.Name, site.WhatsAppNumber)
	if err != nil {
		logging.Fatal("invalid studio WhatsApp number", "error", err)
	}

	h := handler.New(db, cfg.FrontendURL)
	mux := handler.Router{
		Health:      h,
		Bookings:    handler.NewBookingHandler(bookingService),
		Contact:     handler.NewContactHandler(contactService),
		Portfolio:   handler.NewPortfolioHandler(galleryService),
		Upload:      handler.NewUploadHandler(cdn),
		Site:        handler.NewSiteHandler(site),
		WhatsApp:    whatsAppHandler,
		AdminSecret: cfg.AdminSecret,
		SubmitLimit: handler.RateLimit(limiter, m, cfg.TrustedProxyCount),
		Metrics:     promhttp.Handler(),
	}.Mux()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.RequestLogger(m)(handler.SecurityHeaders(h.CORS(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "studio", site.Name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
