package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"chillnest-backend/config"
	"chillnest-backend/controllers"
	"chillnest-backend/routes"
	"chillnest-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established, migrations and seeding applied")

	// Initialize services
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)
	voucherService := services.NewVoucherService(db)
	expiryService := services.NewExpiryService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService, roomService, voucherService)
	roomController := controllers.NewRoomController(roomService)

	// Expiry job: cancel unpaid online bookings past their deadline,
	// every 5 minutes.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/5 * * * *", expiryService.CancelExpiredBookings); err != nil {
		log.Fatalf("Failed to schedule expiry job: %v", err)
	}
	scheduler.Start()
	log.Println("Booking expiry job scheduled")

	// Build router
	router := routes.SetupRouter(bookingController, roomController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down...")

	// Stop the scheduler first and wait for an in-flight expiry cycle to
	// finish its batch rather than aborting it mid-transaction.
	<-scheduler.Stop().Done()
	log.Println("Expiry job stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
