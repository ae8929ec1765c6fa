package main

import (
	"context"
	"log"

	"ai-estimator-be/internal/bootstrap"
	"ai-estimator-be/internal/config"
	"ai-estimator-be/internal/server"
	"ai-estimator-be/internal/tracer"
	"ai-estimator-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Workers
	go func() {
		log.Println("Background: Starting Document Processor...")
		if err := container.ProcessorService.Consume(context.Background()); err != nil {
			log.Printf("Background Processor Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Conversation Enrichment Worker...")
		if err := container.EnrichmentService.Consume(context.Background()); err != nil {
			log.Printf("Background Enrichment Error: %v", err)
		}
	}()
	go container.NotificationWorker.Start()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
