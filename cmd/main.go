package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/approve_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/cancel_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/decline_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/delete_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_month_overview"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_settings"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_week_calendar"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/request_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	calendarCache "github.com/m04kA/SMC-StudioBooking/internal/infra/cache/calendar"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/settings"
	userServiceClient "github.com/m04kA/SMC-StudioBooking/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-StudioBooking/internal/service/settings"
	approveBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/approve_booking"
	createBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	extendBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/extend_booking"
	getWeekCalendarUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_week_calendar"
	requestBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/request_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// calendarStore кэш недельных сеток: Redis или заглушка
type calendarStore interface {
	GetWeek(ctx context.Context, role domain.Role, weekStart time.Time) (*availability.WeekGrid, string, error)
	SetWeek(ctx context.Context, generation string, role domain.Role, weekStart time.Time, grid *availability.WeekGrid) error
	Invalidate(ctx context.Context) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudioBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Studio.Location()
	if err != nil {
		log.Fatal("Failed to load studio timezone %q: %v", cfg.Studio.Timezone, err)
	}
	log.Info("Studio timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка считает запросы только при включенных метриках
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Инициализируем кэш календаря
	var cache calendarStore = calendarCache.Nop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: сетки строятся из БД
			log.Warn("Redis is unavailable at %s, calendar cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = calendarCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
			log.Info("Calendar cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
		cancelPing()
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cache, log)
	bookingSvc := bookingsService.NewService(bookingRepository, cache, location, log)

	if err := settingsSvc.EnsureDefault(context.Background()); err != nil {
		log.Fatal("Failed to seed default studio settings: %v", err)
	}

	// Инициализируем use cases
	requestBookingUseCase := requestBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		cache,
		txManager,
		metricsCollector,
		location,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		cache,
		txManager,
		metricsCollector,
		location,
		log,
	)
	approveBookingUseCase := approveBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		userClient,
		cache,
		txManager,
		metricsCollector,
		location,
		log,
	)
	extendBookingUseCase := extendBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		cache,
		txManager,
		metricsCollector,
		location,
		log,
	)
	getWeekCalendarUseCase := getWeekCalendarUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		cache,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	getWeekCalendar := get_week_calendar.NewHandler(getWeekCalendarUseCase, location, log)
	getSettings := get_settings.NewHandler(settingsSvc, log)
	updateSettings := update_settings.NewHandler(settingsSvc, log)
	requestBooking := request_booking.NewHandler(requestBookingUseCase, location, log)
	getBooking := get_booking.NewHandler(bookingSvc, log)
	getUserBookings := get_user_bookings.NewHandler(bookingSvc, log)
	cancelBooking := cancel_booking.NewHandler(bookingSvc, log)
	getBookings := get_bookings.NewHandler(bookingSvc, location, log)
	createBooking := create_booking.NewHandler(createBookingUseCase, location, log)
	approveBooking := approve_booking.NewHandler(approveBookingUseCase, log)
	declineBooking := decline_booking.NewHandler(bookingSvc, log)
	updateBooking := update_booking.NewHandler(extendBookingUseCase, bookingSvc, log)
	deleteBooking := delete_booking.NewHandler(bookingSvc, log)
	getMonthOverview := get_month_overview.NewHandler(bookingSvc, location, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ROUTES FOR ANY CALLER (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календарь и настройки ---
	protected.HandleFunc("/calendar/week", getWeekCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Заявка на бронирование (с ограничением частоты)
	var requestBookingHandler http.Handler = http.HandlerFunc(requestBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		requestBookingHandler = limiter.Limit(requestBookingHandler)
		log.Info("Rate limit enabled for POST /bookings (rpm=%.1f, burst=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", requestBookingHandler).Methods(http.MethodPost)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/calendar/month", getMonthOverview.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
