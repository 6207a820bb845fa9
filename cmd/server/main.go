package main

import (
	"log"

	_ "officeflow/docs"
	"officeflow/internal/config"
	"officeflow/internal/server"
)

// @title           OfficeFlow API
// @version         1.0
// @description     Agency operations API: clients, tasks, promotions, billing and notes.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
