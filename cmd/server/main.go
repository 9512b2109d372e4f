package main

import (
	"log"

	_ "taskhub/docs"
	"taskhub/internal/config"
	"taskhub/internal/server"
)

// @title           TaskHub API
// @version         1.0
// @description     Multi-tenant project, task and invoicing API.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a session token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
