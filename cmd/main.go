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

	acceptReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/accept_reservation"
	cancelReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/check_availability"
	declineReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/decline_reservation"
	getApartmentReservationsHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_apartment_reservations"
	getReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_reservation"
	getUserRentalsHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_user_rentals"
	getUserReservationsHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/get_user_reservations"
	submitReservationHandler "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/handlers/submit_reservation"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/api/middleware"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/config"
	rentalRepo "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/rental"
	reservationRepo "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/infra/storage/reservation"
	apartmentServiceClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/apartmentservice"
	notifyServiceClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/notifyservice"
	userServiceClient "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/integrations/userservice"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/notifier"
	rentalsService "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/rentals"
	reservationsService "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/service/reservations"
	acceptReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/accept_reservation"
	checkAvailabilityUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/check_availability"
	submitReservationUC "github.com/Dea2002/Site-WEB-Licenta-sub000/internal/usecase/submit_reservation"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/internal/worker"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/dbmetrics"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/logger"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/metrics"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/simpletxmanager"
	"github.com/Dea2002/Site-WEB-Licenta-sub000/pkg/txmanager"
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

	log.Info("Starting ReservationEngine...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	apartmentClient := apartmentServiceClient.NewClient(
		cfg.ApartmentService.URL,
		time.Duration(cfg.ApartmentService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s, ApartmentService=%s, NotifyService=%s)",
		cfg.UserService.URL, cfg.ApartmentService.URL, cfg.NotifyService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		rentalRepository      *rentalRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		rentalRepository = rentalRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		rentalRepository = rentalRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Нотификатор переходов жизненного цикла (fire-and-forget)
	var notifMetrics notifier.Metrics
	if cfg.Metrics.Enabled {
		notifMetrics = metricsCollector
	}
	transitionNotifier := notifier.New(
		notifyClient,
		notifMetrics,
		log,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
	)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		rentalRepository,
		txMgr,
		transitionNotifier,
		log,
	)
	rentalSvc := rentalsService.NewService(
		rentalRepository,
		reservationRepository,
		txMgr,
		transitionNotifier,
		log,
	)

	// Инициализируем use cases
	submitReservationUseCase := submitReservationUC.NewUseCase(
		reservationRepository,
		rentalRepository,
		userClient,
		apartmentClient,
		transitionNotifier,
		log,
	)
	acceptReservationUseCase := acceptReservationUC.NewUseCase(
		reservationRepository,
		rentalRepository,
		userClient,
		apartmentClient,
		txMgr,
		transitionNotifier,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		rentalRepository,
		userClient,
		apartmentClient,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	submitReservation := submitReservationHandler.NewHandler(submitReservationUseCase, log)
	acceptReservation := acceptReservationHandler.NewHandler(acceptReservationUseCase, log)
	declineReservation := declineReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getUserRentals := getUserRentalsHandler.NewHandler(rentalSvc, log)
	getApartmentReservations := getApartmentReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности интервала с предварительным расчётом стоимости
	api.HandleFunc("/apartments/{apartmentId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Подача заявки на бронирование
	protected.HandleFunc("/reservations", submitReservation.Handle).Methods(http.MethodPost)

	// Получение заявки по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Принятие заявки владельцем (атомарно, с авто-отклонением при гонке)
	protected.HandleFunc("/reservations/{reservationId}/accept", acceptReservation.Handle).Methods(http.MethodPatch)

	// Отклонение заявки владельцем (с обязательной причиной)
	protected.HandleFunc("/reservations/{reservationId}/decline", declineReservation.Handle).Methods(http.MethodPatch)

	// Отмена заявки (заявителем или владельцем)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История заявок пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Аренды пользователя
	protected.HandleFunc("/users/{userId}/rentals", getUserRentals.Handle).Methods(http.MethodGet)

	// Заявки по квартире (для владельца)
	protected.HandleFunc("/apartments/{apartmentId}/reservations", getApartmentReservations.Handle).Methods(http.MethodGet)

	// Фоновый воркер завершения истёкших аренд
	workerCtx, stopWorker := context.WithCancel(context.Background())
	completionWorker := worker.NewCompletionWorker(
		rentalSvc,
		time.Duration(cfg.Worker.CompletionIntervalSeconds)*time.Second,
		log,
	)
	go completionWorker.Run(workerCtx)

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

	// Останавливаем воркер и сбор метрик connection pool
	stopWorker()
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
