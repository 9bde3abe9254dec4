package main

import (
	"fmt"
	"log"

	"github.com/Axeldarren/ITList-sub000/internal/config"
	"github.com/Axeldarren/ITList-sub000/internal/database"
	"github.com/Axeldarren/ITList-sub000/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
