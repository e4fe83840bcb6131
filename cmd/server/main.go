package main

import (
	"log"
	"net/http"

	"foodcourt-be/internal/address"
	"foodcourt-be/internal/config"
	"foodcourt-be/internal/db"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/menu"
	"foodcourt-be/internal/middleware"
	"foodcourt-be/internal/notify"
	"foodcourt-be/internal/order"
	"foodcourt-be/internal/user"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	notifier := notify.NewWhatsAppGateway(cfg)

	menuRepo := menu.NewRepository(database)
	menuSvc := menu.NewService(menuRepo)
	menuHandler := menu.NewHandler(menuSvc)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, notifier)
	userHandler := user.NewHandler(userSvc)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)
	addressHandler := address.NewHandler(addressSvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, addressRepo, notifier)
	orderHandler := order.NewHandler(orderSvc)

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/menu", menuHandler.GetMenu).Methods(http.MethodGet)
	api.HandleFunc("/auth/otp", userHandler.SendOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", userHandler.VerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/addresses/{userId}", addressHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/orders", orderHandler.Place).Methods(http.MethodPost)
	api.HandleFunc("/orders/{userId}", orderHandler.History).Methods(http.MethodGet)

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, r))
}
