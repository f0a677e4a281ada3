package main

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"github.com/partnerpay/paymentpage/payment"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout))

	config := payment.DefaultConfig()
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}
	if prefix := os.Getenv("TEST_CARD_PREFIX"); prefix != "" {
		config.TestCardPrefix = prefix
	}

	app := payment.NewApp(logger, config)
	if err := app.Start(); err != nil {
		logger.Error("starting app", "err", err)
		os.Exit(1)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	app.Shutdown()
}
