// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"brightpath/config"
	"brightpath/cron"
	"brightpath/database"
	bookingRepo "brightpath/database/repository/booking"
	slotRepo "brightpath/database/repository/slot"
	specialistRepo "brightpath/database/repository/specialist"
	"brightpath/handlers"
	"brightpath/routes"
	"brightpath/services/events"
	"brightpath/services/meeting"
	"brightpath/services/scheduling"
	"brightpath/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Repositories.
	slots := slotRepo.NewMongoSlotRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	specialists := specialistRepo.NewMongoSpecialistRepo()
	for _, ensure := range []func() error{slots.EnsureIndexes, bookings.EnsureIndexes, specialists.EnsureIndexes} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// The slot cache follows the store's change feed for the life of the
	// process; cancelling cacheCtx stops it on shutdown.
	slotCache := scheduling.NewSlotCache(slotRepo.NewMongoSlotFeed(), slots)
	cacheCtx, stopCache := context.WithCancel(context.Background())
	defer stopCache()
	go slotCache.Run(cacheCtx)

	allocator := &scheduling.SpecialistAllocator{
		Specialists: specialists,
		Bookings:    bookings,
		Slots:       slots,
	}

	var provisioner meeting.Provisioner
	if config.AppConfig.MeetingAPIBaseURL != "" {
		provisioner = meeting.NewHTTPProvisioner(config.AppConfig.MeetingAPIBaseURL, config.AppConfig.MeetingAPIKey)
	}

	engine := &scheduling.DefaultBookingEngine{
		Slots:          slots,
		Bookings:       bookings,
		Allocator:      allocator,
		Cache:          slotCache,
		Provisioner:    provisioner,
		MeetingTimeout: time.Duration(config.AppConfig.MeetingTimeoutSeconds) * time.Second,
	}
	if config.AppConfig.RabbitURL != "" {
		publisher, err := events.NewPublisher(config.AppConfig.RabbitURL, config.AppConfig.RabbitExchange)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to connect event publisher: %v", err)
		}
		defer publisher.Close()
		engine.Events = publisher
	}
	engine.Reminders = cron.NewReminderScheduler()
	go cron.InitReminderWorker()

	slotService := &scheduling.DefaultSlotService{
		Repo:  slots,
		Cache: slotCache,
	}

	maintenance := cron.StartCacheMaintenance(slotCache)
	defer maintenance.Stop()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// HTTP layer.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	routes.SetupRoutes(router,
		handlers.NewBookingHandler(engine, utils.GetCacheClient(), logger),
		handlers.NewSlotHandler(slotService, logger),
		handlers.NewSpecialistHandler(specialists, logger),
	)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopCache()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
