package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"blogapi/cmd/app"
	"blogapi/internal/config"
	handlers "blogapi/internal/handler"
	applog "blogapi/internal/log"
	"blogapi/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := applog.NewLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, _, services := app.App(cfg, logger)
	defer db.CloseDB()

	handler := handlers.NewHandlers(db, services, cfg, logger)

	router := mux.NewRouter()

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", handler.Logout).Methods(http.MethodPost)

	router.HandleFunc("/posts", handler.ListPosts).Methods(http.MethodGet)
	router.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	router.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	router.HandleFunc("/posts/{id}/images", handler.AddImage).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}/images/{imageId}", handler.DeleteImage).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.SessionMiddleware(services.Auth, cfg.SessionCookie),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(logger),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info("server listening", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
