package main

import (
	"log"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/api"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/config"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/database"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/dataset"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/handler"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/repository"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// 数据集缓存，进程内只读取一次
	cache := dataset.NewCache(dataset.LoadFile)

	tripService := service.NewTripService(cache, repository.NewTripRepository(db), cfg.DatasetPath)
	vizService := service.NewVisualizationService(tripService, cfg.Palettes)

	if ds, err := tripService.Dataset(); err != nil {
		log.Printf("[Server] Dataset not loaded yet: %v", err)
	} else {
		log.Printf("[Server] Dataset %s: %d records, %d skipped (%d cached)", ds.Path, len(ds.Records), ds.Skipped, cache.Len())
	}

	// 初始化路由
	router := api.SetupRouter(cfg, api.Handlers{
		Page:          handler.NewPageHandler(vizService),
		Trip:          handler.NewTripHandler(tripService),
		Visualization: handler.NewVisualizationHandler(vizService),
	})

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
