package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/almatbakh/staff-api/internal/app"
	"github.com/almatbakh/staff-api/internal/auth"
	"github.com/almatbakh/staff-api/internal/config"
	"github.com/almatbakh/staff-api/internal/employee"
	"github.com/almatbakh/staff-api/internal/logger"
	platformdb "github.com/almatbakh/staff-api/internal/platform/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	logg := logger.New(cfg.Mode)
	defer func() { _ = logg.Sync() }()

	db, err := platformdb.Connect(cfg)
	if err != nil {
		logg.Fatalw("connect database", "err", err)
	}
	if err := db.AutoMigrate(&auth.Session{}, &employee.Employee{}); err != nil {
		logg.Fatalw("auto migrate", "err", err)
	}

	codec, err := auth.NewCodec(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		logg.Fatalw("token codec", "err", err)
	}
	verifier := &auth.StaticVerifier{
		AdminAddress: cfg.AdminAddress,
		AdminSecret:  cfg.AdminSecret,
		ChefAddress:  cfg.ChefAddress,
		ChefSecret:   cfg.ChefSecret,
	}
	authHandler := auth.NewHandler(codec, auth.NewSessionStore(db), verifier, logg)
	employeeHandler := employee.NewHandler(db, logg)

	handler := app.SetupRouter(codec, authHandler, employeeHandler, cfg.FrontendURL)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logg.Infow("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logg.Fatalw("server stopped", "err", err)
	}
}
