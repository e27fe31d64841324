package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JulMan-Dev/discord-anti-spam/internal/bootstrap"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
)

func main() {
	fmt.Println("Starting anti-spam engine")

	b := bootstrap.New()
	if err := b.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	logging.Info("anti-spam engine running")

	waitForShutdown()

	bootstrap.Shutdown(b.Components)
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
