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

	cancelReservationHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/delete_reservation"
	getReservationHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/get_reservation"
	getRoomAvailabilityHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/get_room_availability"
	listReservationsHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/list_reservations"
	listRoomsHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/list_rooms"
	updateReservationHandler "github.com/pawdesk/PD-ReservationService/internal/api/handlers/update_reservation"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
	"github.com/pawdesk/PD-ReservationService/internal/config"
	contractRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/contract"
	reservationRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/room"
	directoryClient "github.com/pawdesk/PD-ReservationService/internal/integrations/directory"
	reservationsService "github.com/pawdesk/PD-ReservationService/internal/service/reservations"
	roomsService "github.com/pawdesk/PD-ReservationService/internal/service/rooms"
	createReservationUC "github.com/pawdesk/PD-ReservationService/internal/usecase/create_reservation"
	getRoomAvailabilityUC "github.com/pawdesk/PD-ReservationService/internal/usecase/get_room_availability"
	updateReservationUC "github.com/pawdesk/PD-ReservationService/internal/usecase/update_reservation"
	"github.com/pawdesk/PD-ReservationService/pkg/dbmetrics"
	"github.com/pawdesk/PD-ReservationService/pkg/logger"
	"github.com/pawdesk/PD-ReservationService/pkg/metrics"
	"github.com/pawdesk/PD-ReservationService/pkg/simpletxmanager"
	"github.com/pawdesk/PD-ReservationService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PD-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	var (
		reservationRepository *reservationRepo.Repository
		roomRepository        *roomRepo.Repository
		contractRepository    *contractRepo.Repository
	)

	// Transaction manager interface shared by the use cases.
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		contractRepository = contractRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		contractRepository = contractRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		directory,
		txMgr,
		cfg.Booking.MaxDailyReservations,
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		contractRepository,
		txMgr,
		log,
	)

	getRoomAvailabilityUseCase := getRoomAvailabilityUC.NewUseCase(
		reservationRepository,
		roomRepository,
		log,
	)

	reservationSvc := reservationsService.NewService(
		reservationRepository,
		updateReservationUseCase,
		log,
	)
	roomSvc := roomsService.NewService(roomRepository, log)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getRoomAvailability := getRoomAvailabilityHandler.NewHandler(getRoomAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)

	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// All routes require an X-Tenant-ID header; every query below the
	// handlers is scoped by tenant.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Reservations
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Rooms
	protected.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/availability", getRoomAvailability.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
