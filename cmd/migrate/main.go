package main

import (
	"go.uber.org/zap"

	"github.com/vinzencor/student-management/app/config"
	"github.com/vinzencor/student-management/app/database"
	"github.com/vinzencor/student-management/app/logger"
)

// Applies the schema and seeds without starting the server. Useful for
// provisioning a fresh database ahead of a deploy.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := config.InitDB(log); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB(), log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	log.Info("migrations applied")
}
