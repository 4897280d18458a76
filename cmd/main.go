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

	acceptBookingHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/accept_booking"
	cancelBookingHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/check_in"
	completeBookingHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/get_branch_bookings"
	getBranchConfigHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/get_branch_config"
	getCustomerBookingsHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/get_customer_bookings"
	rejectBookingHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/reject_booking"
	updateBranchConfigHandler "github.com/m04kA/SMC-ArrivalService/internal/api/handlers/update_branch_config"
	"github.com/m04kA/SMC-ArrivalService/internal/api/middleware"
	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	branchServiceClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	identityServiceClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	ticketServiceClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/ticketservice"
	vehicleServiceClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/vehicleservice"
	bookingsService "github.com/m04kA/SMC-ArrivalService/internal/service/bookings"
	configService "github.com/m04kA/SMC-ArrivalService/internal/service/config"
	acceptBookingUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/accept_booking"
	cancelBookingUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/cancel_booking"
	checkInUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/check_in"
	completeBookingUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/complete_booking"
	createBookingUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/get_availability"
	rejectBookingUC "github.com/m04kA/SMC-ArrivalService/internal/usecase/reject_booking"
	"github.com/m04kA/SMC-ArrivalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArrivalService/pkg/logger"
	"github.com/m04kA/SMC-ArrivalService/pkg/metrics"
	"github.com/m04kA/SMC-ArrivalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ArrivalService/pkg/txmanager"
)

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

	log.Info("Starting SMC-ArrivalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	branchClient := branchServiceClient.NewClient(
		cfg.BranchService.URL,
		time.Duration(cfg.BranchService.Timeout)*time.Second,
		log,
	)
	vehicleClient := vehicleServiceClient.NewClient(
		cfg.VehicleService.URL,
		time.Duration(cfg.VehicleService.Timeout)*time.Second,
		log,
	)
	ticketClient := ticketServiceClient.NewClient(
		cfg.TicketService.URL,
		time.Duration(cfg.TicketService.Timeout)*time.Second,
		log,
	)
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BranchService=%s, VehicleService=%s, TicketService=%s, IdentityService=%s)",
		cfg.BranchService.URL, cfg.VehicleService.URL, cfg.TicketService.URL, cfg.IdentityService.URL)

	// Публикация событий заявок (RabbitMQ, опционально)
	type EventPublisher interface {
		PublishBookingEvent(ctx context.Context, routingKey string, event notifications.BookingEvent)
	}
	var publisher EventPublisher = notifications.NopPublisher{}

	if cfg.RabbitMQ.Enabled {
		rmq, err := notifications.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
		publisher = rmq
		log.Info("RabbitMQ publisher initialized (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		log.Info("RabbitMQ disabled, booking events will not be published")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Guard-проверки вместимости поверх репозитория заявок и тикетов
	guard := capacity.NewGuard(bookingRepository, ticketClient)

	limits := cfg.Limits.ToDomain()
	log.Info("Booking limits: max_active=%d, max_daily_per_vehicle=%d, cancellation_cutoff=%dm",
		limits.MaxActiveRequests, limits.MaxDailyPerVehicle, limits.CancellationCutoffMinutes)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		identityClient,
		log,
	)
	configSvc := configService.NewService(
		scheduleRepository,
		branchClient,
		identityClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		guard,
		branchClient,
		vehicleClient,
		publisher,
		txMgr,
		limits,
		log,
	)
	acceptBookingUseCase := acceptBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		guard,
		branchClient,
		publisher,
		txMgr,
		log,
	)
	rejectBookingUseCase := rejectBookingUC.NewUseCase(
		bookingRepository,
		publisher,
		txMgr,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		guard,
		publisher,
		txMgr,
		log,
	)
	completeBookingUseCase := completeBookingUC.NewUseCase(
		bookingRepository,
		publisher,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		identityClient,
		publisher,
		txMgr,
		limits,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		branchClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	acceptBooking := acceptBookingHandler.NewHandler(acceptBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(rejectBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	getBranchConfig := getBranchConfigHandler.NewHandler(configSvc, log)
	updateBranchConfig := updateBranchConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

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

	// Доступность окон приезда филиала на дату
	api.HandleFunc("/branches/{branchId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация расписания филиала
	api.HandleFunc("/branches/{branchId}/config",
		getBranchConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки на прибытие ---
	// Создание заявки
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История заявок клиента
	protected.HandleFunc("/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Получение заявки по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена заявки (клиент или сотрудник филиала)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Жизненный цикл заявки (для сотрудников филиала) ---
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPost)

	// --- Управление филиалом ---
	// Список заявок филиала
	protected.HandleFunc("/branches/{branchId}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расписания филиала
	protected.HandleFunc("/branches/{branchId}/config", updateBranchConfig.Handle).Methods(http.MethodPut)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
