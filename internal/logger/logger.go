package logger

import (
	"log"

	"go.uber.org/zap"
)

// New builds a sugared zap logger. mode "release" selects the production
// encoder, anything else the development one.
func New(mode string) *zap.SugaredLogger {
	var l *zap.Logger
	var err error
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	return l.Sugar()
}
