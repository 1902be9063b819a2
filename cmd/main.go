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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addSpecialistHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/add_specialist"
	approveOrderHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/approve_order"
	cancelOrderHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/cancel_order"
	completeOrderHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/complete_order"
	createBusinessHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/create_business"
	createOrderHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/create_order"
	createPositionHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/create_position"
	createReviewHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/create_review"
	createServiceHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/create_service"
	declineOrderHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/decline_order"
	deleteReviewHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/delete_review"
	deleteSettingsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/delete_settings"
	getAvailabilityHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_availability"
	getBusinessHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_business"
	getCustomerOrdersHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_customer_orders"
	getOrderHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_order"
	getSettingsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_settings"
	getSpecialistOrdersHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_specialist_orders"
	getStatisticsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/get_statistics"
	listBusinessesHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/list_businesses"
	listPositionsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/list_positions"
	listReviewsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/list_reviews"
	listServicesHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/list_services"
	listSettingsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/list_settings"
	listSpecialistsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/list_specialists"
	setBusinessHoursHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/set_business_hours"
	setPositionHoursHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/set_position_hours"
	updateBusinessHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/update_business"
	upsertSettingsHandler "github.com/m04kA/SMC-BeautyService/internal/api/handlers/upsert_settings"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/config"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	jobRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/job"
	"github.com/m04kA/SMC-BeautyService/internal/infra/storage/migrations"
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	positionRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/position"
	reviewRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/review"
	serviceRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/settings"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/mailer"
	catalogService "github.com/m04kA/SMC-BeautyService/internal/service/catalog"
	notificationsService "github.com/m04kA/SMC-BeautyService/internal/service/notifications"
	ordersService "github.com/m04kA/SMC-BeautyService/internal/service/orders"
	reviewsService "github.com/m04kA/SMC-BeautyService/internal/service/reviews"
	settingsService "github.com/m04kA/SMC-BeautyService/internal/service/settings"
	createOrderUC "github.com/m04kA/SMC-BeautyService/internal/usecase/create_order"
	getAvailabilityUC "github.com/m04kA/SMC-BeautyService/internal/usecase/get_availability"
	getStatisticsUC "github.com/m04kA/SMC-BeautyService/internal/usecase/get_statistics"
	"github.com/m04kA/SMC-BeautyService/internal/worker"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
	"github.com/m04kA/SMC-BeautyService/pkg/metrics"
	"github.com/m04kA/SMC-BeautyService/pkg/txmanager"
)

// orderPublisher издатель событий заказов (kafka или заглушка)
type orderPublisher interface {
	PublishOrderEvent(ctx context.Context, event eventbus.OrderEvent) error
	Close() error
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

	log.Info("Starting SMC-BeautyService...")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}

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

	// Применяем миграции схемы
	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	businessRepository := businessRepo.NewRepository(wrappedDB)
	positionRepository := positionRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	specialistRepository := specialistRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	jobRepository := jobRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)

	// Инициализируем интеграции
	var mailClient notificationsService.Mailer
	if cfg.SMTP.Enabled {
		mailClient = mailer.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
		log.Info("SMTP mailer initialized (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		mailClient = mailer.NewNopClient(log)
		log.Warn("SMTP disabled, emails will only be logged")
	}

	var publisher orderPublisher = eventbus.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = eventbus.NewPublisher(eventbus.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	signer, err := linktoken.NewSigner(cfg.Orders.LinkTokenSecret, time.Duration(cfg.Orders.LinkTokenTTLHours)*time.Hour)
	if err != nil {
		log.Fatal("Failed to initialize link signer: %v", err)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		businessRepository,
		positionRepository,
		serviceRepository,
		specialistRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		businessRepository,
		positionRepository,
		txMgr,
		log,
	)
	notificationsSvc := notificationsService.NewService(
		mailClient,
		signer,
		cfg.App.PublicBaseURL,
		loc,
		metricsCollector,
		log,
	)
	ordersSvc := ordersService.NewService(
		orderRepository,
		jobRepository,
		specialistRepository,
		businessRepository,
		settingsSvc,
		signer,
		notificationsSvc,
		publisher,
		metricsCollector,
		txMgr,
		loc,
		log,
	)
	reviewsSvc := reviewsService.NewService(
		reviewRepository,
		orderRepository,
		businessRepository,
		log,
	)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		jobRepository,
		specialistRepository,
		businessRepository,
		positionRepository,
		serviceRepository,
		settingsSvc,
		notificationsSvc,
		publisher,
		metricsCollector,
		txMgr,
		loc,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		specialistRepository,
		businessRepository,
		positionRepository,
		serviceRepository,
		orderRepository,
		settingsSvc,
		loc,
		log,
	)
	getStatisticsUseCase := getStatisticsUC.NewUseCase(
		businessRepository,
		orderRepository,
		loc,
		log,
	)

	// Инициализируем handlers
	createBusiness := createBusinessHandler.NewHandler(catalogSvc, log)
	listBusinesses := listBusinessesHandler.NewHandler(catalogSvc, log)
	getBusiness := getBusinessHandler.NewHandler(catalogSvc, log)
	updateBusiness := updateBusinessHandler.NewHandler(catalogSvc, log)
	setBusinessHours := setBusinessHoursHandler.NewHandler(catalogSvc, log)
	createPosition := createPositionHandler.NewHandler(catalogSvc, log)
	listPositions := listPositionsHandler.NewHandler(catalogSvc, log)
	setPositionHours := setPositionHoursHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	addSpecialist := addSpecialistHandler.NewHandler(catalogSvc, log)
	listSpecialists := listSpecialistsHandler.NewHandler(catalogSvc, log)

	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	upsertSettings := upsertSettingsHandler.NewHandler(settingsSvc, log)
	listSettings := listSettingsHandler.NewHandler(settingsSvc, log)
	deleteSettings := deleteSettingsHandler.NewHandler(settingsSvc, log)

	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	getCustomerOrders := getCustomerOrdersHandler.NewHandler(ordersSvc, log)
	getSpecialistOrders := getSpecialistOrdersHandler.NewHandler(ordersSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(ordersSvc, log)
	completeOrder := completeOrderHandler.NewHandler(ordersSvc, log)
	approveOrder := approveOrderHandler.NewHandler(ordersSvc, log)
	declineOrder := declineOrderHandler.NewHandler(ordersSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(getStatisticsUseCase, log)

	createReview := createReviewHandler.NewHandler(reviewsSvc, log)
	listReviews := listReviewsHandler.NewHandler(reviewsSvc, log)
	deleteReview := deleteReviewHandler.NewHandler(reviewsSvc, log)

	// Ограничение частоты для создания заказов и ссылок из писем (если включен redis)
	var rateLimitOrders mux.MiddlewareFunc = func(next http.Handler) http.Handler { return next }
	rateLimitLinks := rateLimitOrders
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, rate limiter will fail open: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounter(rdb, time.Duration(cfg.Redis.WindowSeconds)*time.Second),
			cfg.Redis.RateLimit,
			cfg.Metrics.ServiceName,
			true,
			log,
		)
		rateLimitOrders = limiter.Middleware
		// Ссылки открываются без аутентификации, ключ только по адресу клиента
		rateLimitLinks = limiter.KeyedBy(middleware.ByClientIP(cfg.Redis.TrustedProxyHeader)).Middleware
		log.Info("Rate limiter enabled (%d requests per %ds)", cfg.Redis.RateLimit, cfg.Redis.WindowSeconds)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware nil-safe, без метрик просто пропускает запросы
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/businesses", listBusinesses.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}", getBusiness.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/positions", listPositions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/specialists", listSpecialists.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/reviews", listReviews.Handle).Methods(http.MethodGet)

	// Действующие настройки бронирования
	api.HandleFunc("/businesses/{businessId}/settings", getSettings.Handle).Methods(http.MethodGet)

	// Свободное время специалиста
	api.HandleFunc("/specialists/{specialistId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Ссылки из письма специалисту (авторизация по токену) ---
	links := api.PathPrefix("").Subrouter()
	links.Use(rateLimitLinks)
	links.HandleFunc("/orders/{orderId}/approve", approveOrder.Handle).Methods(http.MethodGet)
	links.HandleFunc("/orders/{orderId}/decline", declineOrder.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление бизнесом (для владельцев) ---
	protected.HandleFunc("/businesses", createBusiness.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}", updateBusiness.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/working-hours", setBusinessHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/positions", createPosition.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/positions/{positionId}/working-hours", setPositionHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/positions/{positionId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/positions/{positionId}/specialists", addSpecialist.Handle).Methods(http.MethodPost)

	// Настройки бронирования
	protected.HandleFunc("/businesses/{businessId}/settings", upsertSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/settings", deleteSettings.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/businesses/{businessId}/settings/all", listSettings.Handle).Methods(http.MethodGet)

	// Статистика бизнеса
	protected.HandleFunc("/businesses/{businessId}/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// --- Заказы ---
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orders/{orderId}/complete", completeOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/orders", getCustomerOrders.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/specialists/{specialistId}/orders", getSpecialistOrders.Handle).Methods(http.MethodGet)

	// Создание заказа ограничено по частоте
	ordering := protected.PathPrefix("").Subrouter()
	ordering.Use(rateLimitOrders)
	ordering.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// --- Отзывы ---
	protected.HandleFunc("/businesses/{businessId}/reviews", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}", deleteReview.Handle).Methods(http.MethodDelete)

	// Запускаем обработчик отложенных задач заказов
	workerCtx, stopWorker := context.WithCancel(context.Background())
	jobsWorker := worker.New(jobRepository, ordersSvc, metricsCollector, log, worker.Config{
		Interval:    time.Duration(cfg.Worker.PollIntervalSeconds) * time.Second,
		BatchSize:   cfg.Worker.BatchSize,
		MaxAttempts: cfg.Worker.MaxAttempts,
		Backoff:     time.Duration(cfg.Worker.RetryBackoffSeconds) * time.Second,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		jobsWorker.Run(workerCtx)
	}()

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем обработчик задач и ждём завершения текущей пачки
	stopWorker()
	select {
	case <-workerDone:
		log.Info("Jobs worker stopped")
	case <-shutdownCtx.Done():
		log.Warn("Jobs worker did not stop in time")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
