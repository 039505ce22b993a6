package app

import (
	"context"
	"log"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/config"
	"github.com/dheerajram13/job-app-tracker/internal/database"
	dbpostgres "github.com/dheerajram13/job-app-tracker/internal/database/postgres"
	"github.com/dheerajram13/job-app-tracker/internal/infrastructure/cache"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
	"github.com/dheerajram13/job-app-tracker/internal/scheduler"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
	"github.com/dheerajram13/job-app-tracker/internal/scrape/source"
	"github.com/dheerajram13/job-app-tracker/internal/skills"
	"github.com/dheerajram13/job-app-tracker/internal/ws"
)

// Container owns every long-lived component and their shutdown order.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis *cache.Redis

	Postings     repository.PostingRepository
	Applications repository.ApplicationRepository
	Users        repository.UserRepository
	Profiles     repository.ProfileRepository

	Manager   *scrape.Manager
	Importer  *scrape.URLImporter
	Scheduler *scheduler.Scheduler
	Hub       *ws.Hub
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	postings := repository.NewPostgresPostingRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)
	users := repository.NewPostgresUserRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)

	hub := ws.NewHub(logger)

	// Task records go to Redis when it is up so status survives a
	// restart; otherwise the in-memory store serves a single process.
	var taskStore scrape.TaskStore
	if redis.Available() {
		taskStore = cache.NewTaskStore(redis, cfg.Redis.TaskTTL)
	} else {
		logger.Printf("scrape task store falling back to memory")
		taskStore = scrape.NewMemoryStore()
	}

	registry := source.NewRegistry(
		source.NewRemotive(),
		source.NewDevto(),
		source.NewWeWorkRemotely(),
		source.NewWellfound(),
	)

	// Terminal tasks fan out to websocket clients, and a completed
	// scrape invalidates the cached posting lists it just changed.
	notifyWS := ws.TaskNotifier(hub)
	notify := func(t scrape.Task) {
		notifyWS(t)
		if t.Status != scrape.StatusCompleted || len(t.Results) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, pattern := range []string{"postings:list:*", "postings:top-skills:*"} {
			if err := redis.DeleteByPattern(ctx, pattern); err != nil {
				logger.Printf("cache invalidation failed pattern=%s err=%v", pattern, err)
			}
		}
	}

	extractor := skills.NewExtractor()
	importer := scrape.NewURLImporter(extractor)

	manager := scrape.NewManager(taskStore, registry, postings, extractor, scrape.ManagerOptions{
		Defaults: scrape.Defaults{
			Location:       cfg.Scrape.DefaultLocation,
			NumResults:     cfg.Scrape.DefaultResults,
			FreshnessHours: int(cfg.Scrape.DefaultMaxAge / time.Hour),
		},
		SiteTimeout: cfg.Scrape.SiteTimeout,
		Workers:     cfg.Scrape.Workers,
		Notify:      notify,
	}, logger)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		var locker scheduler.Locker
		if redis.Available() {
			locker = redis
		}
		sched = scheduler.New(manager, locker, cfg.Scheduler, logger)
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Redis:        redis,
		Postings:     postings,
		Applications: applications,
		Users:        users,
		Profiles:     profiles,
		Manager:      manager,
		Importer:     importer,
		Scheduler:    sched,
		Hub:          hub,
	}, nil
}

// Start brings up the background machinery: hub, worker pool, cron.
func (c *Container) Start(ctx context.Context) error {
	go c.Hub.Run()
	c.Manager.Start(ctx)
	if c.Scheduler != nil {
		if err := c.Scheduler.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Manager != nil {
		c.Manager.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
