package main

import (
	"github.com/rewardjar/rewardjar/config"
	"github.com/rewardjar/rewardjar/models"
	"github.com/rewardjar/rewardjar/routes"
	"github.com/rewardjar/rewardjar/store"
	"github.com/rewardjar/rewardjar/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Record{})
	s := store.New(db)

	r := routes.SetupRouter(cfg, s)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
