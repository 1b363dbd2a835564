package main

import (
	"context"
	"log"
	"time"

	"github.com/Goodnessmbakara/skillsverse/internal/bootstrap"
	"github.com/Goodnessmbakara/skillsverse/internal/config"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
	searchService "github.com/Goodnessmbakara/skillsverse/internal/modules/search/service"
	"github.com/Goodnessmbakara/skillsverse/internal/scheduler"
	"github.com/Goodnessmbakara/skillsverse/internal/server"
	"github.com/Goodnessmbakara/skillsverse/pkg/database"
	"github.com/Goodnessmbakara/skillsverse/pkg/metrics"
	"github.com/Goodnessmbakara/skillsverse/pkg/storage"
	"github.com/Goodnessmbakara/skillsverse/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Setup()

	db, err := database.Connect(database.Options{
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Debug:    !cfg.IsProduction(),
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedLearningResources(db); err != nil {
		log.Fatalf("failed to seed learning resources: %v", err)
	}

	redisClient := connectRedis(cfg.RedisURL)

	var imageStorage storage.ImageStorage
	if cfg.CloudinaryURL != "" {
		imageStorage, err = storage.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryUploadFolder)
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("WARNING: CLOUDINARY_URL is not set, avatar uploads are disabled")
	}

	srv := server.NewServer(server.Deps{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Storage: imageStorage,
		Index:   searchService.NewJobIndex(cfg.MeiliSearchHost, cfg.MeiliMasterKey),
		Chain:   client.NewClient(cfg.ChainRPCURL, cfg.ChainTimeout),
		Metrics: metrics.New(),
	})

	jobs := scheduler.New()
	if err := jobs.Register(scheduler.SearchReindex(cfg.SearchReindexSpec, srv.ReindexSearch)); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()
	log.Printf("scheduler started with tasks: %v", jobs.Tasks())

	// initial fill so search works before the first scheduled run
	go func() {
		if err := jobs.RunByName(context.Background(), scheduler.SearchReindexTask); err != nil {
			log.Printf("initial search reindex failed: %v", err)
		}
	}()

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when redis is unreachable. Rate limiting,
// sessions and realtime notifications degrade instead of blocking startup.
func connectRedis(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("WARNING: invalid REDIS_URL: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: redis unavailable, continuing without it: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
