package main

import (
	"fxconverter/internal/app"

	"github.com/sirupsen/logrus"
)

// @title FX Converter API
// @version 1.0.0
// @description Currency conversion with cached exchange rates and per-user transaction history.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
