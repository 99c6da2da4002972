package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/cancel_reservation"
	createClosureHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/create_closure"
	createReservationHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/create_reservation"
	createWalkinHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/create_walkin"
	deleteClosureHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/delete_closure"
	exportReservationsHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/export_reservations"
	getAvailableSlotsHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/get_available_slots"
	getLoyaltyHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/get_loyalty"
	getPolicyHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/get_policy"
	listClosuresHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/list_closures"
	listReservationsHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/list_reservations"
	markNoShowHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/mark_no_show"
	updatePolicyHandler "github.com/m04kA/Restaurant-BookingService/internal/api/handlers/update_policy"
	"github.com/m04kA/Restaurant-BookingService/internal/api/middleware"
	"github.com/m04kA/Restaurant-BookingService/internal/config"
	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	slotscache "github.com/m04kA/Restaurant-BookingService/internal/infra/cache"
	closureRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/closure"
	policyRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/Restaurant-BookingService/internal/notify"
	closuresService "github.com/m04kA/Restaurant-BookingService/internal/service/closures"
	policyService "github.com/m04kA/Restaurant-BookingService/internal/service/policy"
	reservationsService "github.com/m04kA/Restaurant-BookingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_reservation"
	createWalkinUC "github.com/m04kA/Restaurant-BookingService/internal/usecase/create_walkin"
	getAvailableSlotsUC "github.com/m04kA/Restaurant-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/Restaurant-BookingService/internal/worker/remindersweep"
	"github.com/m04kA/Restaurant-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Restaurant-BookingService/pkg/logger"
	"github.com/m04kA/Restaurant-BookingService/pkg/metrics"
	"github.com/m04kA/Restaurant-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Restaurant-BookingService/pkg/txmanager"
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

	log.Info("Starting Restaurant-BookingService...")
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

	// Применяем миграции схемы
	if err := runMigrations(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied (path=%s)", cfg.Database.MigrationsPath)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		closureRepository     *closureRepo.Repository
		policyRepository      *policyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		closureRepository = closureRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		closureRepository = closureRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Интерфейс кеша слотов (используется в usecases и сервисах).
	// При выключенном кеше переменная остаётся nil интерфейсом:
	// типизированный nil-указатель не прошёл бы проверки потребителей.
	type SlotsCache interface {
		GetSlots(ctx context.Context, date time.Time) ([]domain.AvailableSlot, bool)
		SaveSlots(ctx context.Context, date time.Time, slots []domain.AvailableSlot) error
		InvalidateDate(ctx context.Context, date time.Time) error
		InvalidateRange(ctx context.Context, from, to time.Time) error
	}
	var slotsCache SlotsCache

	if cfg.Cache.Enabled {
		redisCache, err := slotscache.New(
			context.Background(),
			cfg.Cache.Addr,
			cfg.Cache.Password,
			cfg.Cache.DB,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to connect to slots cache: %v", err)
		}
		defer redisCache.Close()
		slotsCache = redisCache
		log.Info("Slots cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	// Инициализируем канал уведомлений гостям
	var notifier notify.Notifier
	switch cfg.Notifier.Mode {
	case "smtp":
		notifier = notify.WithBreaker(notify.NewSMTPNotifier(
			cfg.Notifier.SMTP.Host,
			cfg.Notifier.SMTP.Port,
			cfg.Notifier.SMTP.Username,
			cfg.Notifier.SMTP.Password,
			cfg.Notifier.From,
		), log)
		log.Info("Notifier initialized (mode=smtp, host=%s:%d)", cfg.Notifier.SMTP.Host, cfg.Notifier.SMTP.Port)
	case "amqp":
		amqpNotifier, amqpErr := notify.NewAMQPNotifier(cfg.Notifier.AMQP.URL, cfg.Notifier.AMQP.Queue)
		if amqpErr != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", amqpErr)
		}
		defer amqpNotifier.Close()
		notifier = notify.WithBreaker(amqpNotifier, log)
		log.Info("Notifier initialized (mode=amqp, queue=%s)", cfg.Notifier.AMQP.Queue)
	default:
		notifier = notify.NewNoopNotifier(log)
		log.Info("Notifier disabled (mode=off)")
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		notifier,
		slotsCache,
		log,
	)
	closuresSvc := closuresService.NewService(
		closureRepository,
		slotsCache,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		closureRepository,
		policySvc,
		txMgr,
		notifier,
		slotsCache,
		log,
	)

	createWalkinUseCase := createWalkinUC.NewUseCase(
		reservationRepository,
		policySvc,
		txMgr,
		slotsCache,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		closureRepository,
		policySvc,
		slotsCache,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	createWalkin := createWalkinHandler.NewHandler(createWalkinUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	exportReservations := exportReservationsHandler.NewHandler(reservationsSvc, log)
	markNoShow := markNoShowHandler.NewHandler(reservationsSvc, log)
	getLoyalty := getLoyaltyHandler.NewHandler(reservationsSvc, log)
	createClosure := createClosureHandler.NewHandler(closuresSvc, log)
	listClosures := listClosuresHandler.NewHandler(closuresSvc, log)
	deleteClosure := deleteClosureHandler.NewHandler(closuresSvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Сетка доступных слотов на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Отмена бронирования по токену из письма
	api.HandleFunc("/reservations/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Basic Auth)
	// ============================================================

	if cfg.Auth.AdminUser == "" {
		log.Warn("Auth admin_user is not configured, admin API will reject all requests")
	}

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.BasicAuth(cfg.Auth.AdminUser, cfg.Auth.AdminPasswordHash, log))

	// --- Посадки ---
	// Регистрация walk-in гостей
	admin.HandleFunc("/walkins", createWalkin.Handle).Methods(http.MethodPost)

	// Список бронирований за день
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// CSV выгрузка бронирований за день
	admin.HandleFunc("/reservations/export", exportReservations.Handle).Methods(http.MethodGet)

	// Отметка неявки
	admin.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// --- Закрытия зала ---
	// Создание закрытия
	admin.HandleFunc("/closures", createClosure.Handle).Methods(http.MethodPost)

	// Список закрытий
	admin.HandleFunc("/closures", listClosures.Handle).Methods(http.MethodGet)

	// Удаление закрытия
	admin.HandleFunc("/closures/{closureId}", deleteClosure.Handle).Methods(http.MethodDelete)

	// --- Гости и политика зала ---
	// Статус лояльности гостя по email
	admin.HandleFunc("/loyalty", getLoyalty.Handle).Methods(http.MethodGet)

	// Политика зала
	admin.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/policy", updatePolicy.Handle).Methods(http.MethodPut)

	// Запускаем фоновый воркер напоминаний
	workerCtx, stopWorker := context.WithCancel(context.Background())

	if cfg.Reminder.Enabled {
		sweeper := remindersweep.NewWorker(
			reservationRepository,
			notifier,
			log,
			time.Duration(cfg.Reminder.IntervalMinutes)*time.Minute,
			time.Duration(cfg.Reminder.LeadHours)*time.Hour,
			time.Duration(cfg.Reminder.WindowMinutes)*time.Minute,
		)
		go sweeper.Run(workerCtx)
		log.Info("Reminder sweep worker started (interval=%dm, lead=%dh, window=%dm)",
			cfg.Reminder.IntervalMinutes, cfg.Reminder.LeadHours, cfg.Reminder.WindowMinutes)
	}

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

	// Останавливаем воркер напоминаний
	stopWorker()

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

// runMigrations применяет невыполненные миграции схемы из каталога path
func runMigrations(db *sql.DB, path string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
