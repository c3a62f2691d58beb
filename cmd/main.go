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

	createAppointmentHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/create_appointment"
	forecastCapacityHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/forecast_capacity"
	getAppointmentHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_appointment"
	getCalendarHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_calendar"
	getCapacityAlertsHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_capacity_alerts"
	getClinicCapacityHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_clinic_capacity"
	getStaffAvailabilityHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_staff_availability"
	getStaffCapacityHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_staff_capacity"
	getUnderutilizedStaffHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/get_underutilized_staff"
	optimizeScheduleHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/optimize_schedule"
	rescheduleAppointmentHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/CMP-SchedulingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/CMP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CMP-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/appointment"
	capacityRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/capacity"
	scheduleRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/schedule"
	staffDirectoryClient "github.com/m04kA/CMP-SchedulingService/internal/integrations/staffdirectory"
	availabilityService "github.com/m04kA/CMP-SchedulingService/internal/service/availability"
	capacityService "github.com/m04kA/CMP-SchedulingService/internal/service/capacity"
	conflictsService "github.com/m04kA/CMP-SchedulingService/internal/service/conflicts"
	planningService "github.com/m04kA/CMP-SchedulingService/internal/service/planning"
	createAppointmentUC "github.com/m04kA/CMP-SchedulingService/internal/usecase/create_appointment"
	getCalendarUC "github.com/m04kA/CMP-SchedulingService/internal/usecase/get_calendar"
	rescheduleAppointmentUC "github.com/m04kA/CMP-SchedulingService/internal/usecase/reschedule_appointment"
	updateAppointmentStatusUC "github.com/m04kA/CMP-SchedulingService/internal/usecase/update_appointment_status"
	"github.com/m04kA/CMP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CMP-SchedulingService/pkg/logger"
	"github.com/m04kA/CMP-SchedulingService/pkg/metrics"
	"github.com/m04kA/CMP-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/CMP-SchedulingService/pkg/txmanager"
)

// TxManager объединяет режимы транзакций, используемые usecase-слоем
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting CMP-SchedulingService...")
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

	// Инициализируем клиента справочника персонала
	staffDirectory := staffDirectoryClient.NewClient(
		cfg.StaffDirectory.URL,
		time.Duration(cfg.StaffDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("StaffDirectory client initialized (url=%s, timeout=%ds)",
		cfg.StaffDirectory.URL, cfg.StaffDirectory.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		capacityRepository    *capacityRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(scheduleRepository, log)

	conflictsSvc := conflictsService.NewService(appointmentRepository, availabilitySvc, log)

	calculatorSvc := capacityService.NewService(
		appointmentRepository,
		capacityRepository,
		availabilitySvc,
		capacityService.Config{
			RetryInterval: time.Duration(cfg.Capacity.RecomputeRetryInterval) * time.Second,
			RetryAttempts: cfg.Capacity.RecomputeRetryAttempts,
		},
		log,
	)

	plannerSvc := planningService.NewService(
		capacityRepository,
		staffDirectory,
		planningService.Config{
			UnderutilizedThreshold:  cfg.Capacity.UnderutilizedThreshold,
			LowUtilizationBound:     cfg.Capacity.LowUtilizationBound,
			MediumUtilizationBound:  cfg.Capacity.MediumUtilizationBound,
			NoShowRateBound:         cfg.Capacity.NoShowRateBound,
			SlotSizeMinutes:         cfg.Capacity.SlotSizeMinutes,
			AverageRevenuePerMinute: cfg.Capacity.AverageRevenuePerMinute,
			ForecastWindowDays:      cfg.Capacity.ForecastWindowDays,
			ForecastBuffer:          cfg.Capacity.ForecastBuffer,
			WeightedAverage:         cfg.Capacity.WeightedAverage,
		},
		log,
	)

	// Фоновые задачи: воркер отложенных пересчётов и сверочный проход
	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	go calculatorSvc.Run(backgroundCtx)

	reconcileInterval := time.Duration(cfg.Capacity.ReconcileInterval) * time.Second
	go func() {
		ticker := time.NewTicker(reconcileInterval)
		defer ticker.Stop()

		for {
			select {
			case <-backgroundCtx.Done():
				return
			case <-ticker.C:
				// Окно с запасом в два интервала перекрывает пропущенные тики
				since := time.Now().Add(-2 * reconcileInterval)
				if err := calculatorSvc.Reconcile(backgroundCtx, since); err != nil {
					log.Error("Reconcile pass failed: %v", err)
				}
			}
		}
	}()
	log.Info("Capacity recompute worker and reconcile loop started (reconcile every %s)", reconcileInterval)

	requestTimeout := time.Duration(cfg.Capacity.RequestTimeout) * time.Second

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		conflictsSvc,
		plannerSvc,
		calculatorSvc,
		staffDirectory,
		txMgr,
		requestTimeout,
		log,
	)

	updateStatusUseCase := updateAppointmentStatusUC.NewUseCase(
		appointmentRepository,
		calculatorSvc,
		txMgr,
		requestTimeout,
		log,
	)

	rescheduleUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		conflictsSvc,
		calculatorSvc,
		txMgr,
		requestTimeout,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		appointmentRepository,
		capacityRepository,
		availabilitySvc,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentRepository, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(updateStatusUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getCapacityAlerts := getCapacityAlertsHandler.NewHandler(plannerSvc, log)
	getUnderutilizedStaff := getUnderutilizedStaffHandler.NewHandler(plannerSvc, log)
	getClinicCapacity := getClinicCapacityHandler.NewHandler(plannerSvc, log)
	optimizeSchedule := optimizeScheduleHandler.NewHandler(plannerSvc, log)
	getStaffCapacity := getStaffCapacityHandler.NewHandler(capacityRepository, log)
	forecastCapacity := forecastCapacityHandler.NewHandler(plannerSvc, log)
	getStaffAvailability := getStaffAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

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

	// Окна доступности сотрудника
	api.HandleFunc("/staff/{staffId}/availability", getStaffAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Приёмы ---
	// Создание приёма
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса приёма (подтверждение, отмена, неявка, завершение)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Перенос приёма
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Календарное представление (содержит данные пациентов)
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- Загрузка и планирование (для администраторов клиники) ---
	// Загрузка сотрудника на дату
	protected.HandleFunc("/staff/{staffId}/capacity", getStaffCapacity.Handle).Methods(http.MethodGet)

	// Прогноз спроса по сотруднику
	protected.HandleFunc("/staff/{staffId}/capacity/forecast", forecastCapacity.Handle).Methods(http.MethodGet)

	// Алерты по загрузке
	protected.HandleFunc("/capacity/alerts", getCapacityAlerts.Handle).Methods(http.MethodGet)

	// Недозагруженные сотрудники
	protected.HandleFunc("/capacity/underutilized", getUnderutilizedStaff.Handle).Methods(http.MethodGet)

	// Агрегированная загрузка клиники
	protected.HandleFunc("/capacity/clinic", getClinicCapacity.Handle).Methods(http.MethodGet)

	// Рекомендации по дозаполнению расписания
	protected.HandleFunc("/capacity/optimize", optimizeSchedule.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые пересчёты
	stopBackground()

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
