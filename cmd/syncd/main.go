package main

import (
	"context"
	"log"

	"github.com/mvoronin/authgate/internal/app"
	"github.com/mvoronin/authgate/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
