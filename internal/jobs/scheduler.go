package jobs

import (
	"database/sql"
	"fmt"
	"log"

	"VyaparDash/internal/logger"
	"VyaparDash/internal/serviceiface"
)

type CronService struct {
	config map[string]interface{}
	db     *sql.DB
}

func NewCronService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("🚀 Starting cron service...")

	recomputeConfig := NewDefaultRecomputeConfig()

	// Override recompute config from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["recompute_schedule"].(string); ok && schedule != "" {
			recomputeConfig.Schedule = schedule
		}
		if batchSize, ok := s.config["recompute_batch_size"].(int); ok && batchSize > 0 {
			recomputeConfig.BatchSize = batchSize
		}
	}

	err := RunRecomputeScheduler(recomputeConfig, s.db)
	if err != nil {
		return fmt.Errorf("failed to start GST recompute scheduler: %v", err)
	}

	logger.GlobalLogger.LogAudit("Cron service started with GST recompute scheduler")
	log.Println("Cron service started — GST Recompute scheduled")

	return nil
}

func (s *CronService) Stop() error {
	// Implement stop logic if needed
	return nil
}
