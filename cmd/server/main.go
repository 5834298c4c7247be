package main

import (
	"context"
	"log"

	"github.com/jpcdigital/ebookpay/internal/server"
	"github.com/jpcdigital/ebookpay/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}

	app.Run(ctx)
}
