package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/docuchat/internal/server"
	"github.com/dmitrijs2005/docuchat/internal/server/config"
)

func main() {

	// optional .env with the API key and admin credentials
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
