package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"devdocs/samplemap/internal/classify"
	"devdocs/samplemap/internal/client"
	"devdocs/samplemap/internal/config"
	"devdocs/samplemap/internal/crawler"
	"devdocs/samplemap/internal/repository"
	"devdocs/samplemap/internal/service"
	"devdocs/samplemap/internal/store"
	"devdocs/samplemap/internal/visit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Store   store.ContentStore
	Guard   visit.Guard
	Crawler *crawler.Crawler
	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
	out   io.WriteCloser
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	fetcher := client.NewFetcher(cfg.Crawl)
	contentStore := store.NewMirrorStore(cfg.Cache.Dir, fetcher)
	container.Store = contentStore

	guard := visit.Guard(visit.NewMemoryGuard())
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis, using shared visit guard")

		container.redis = rdb
		guard = visit.NewRedisGuard(rdb, cfg.Site.RootURL(), time.Duration(cfg.Redis.TTL)*time.Second)
	}
	container.Guard = guard

	var recordRepo repository.RecordRepository
	if cfg.Database.Enabled() {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, err
		}

		container.db = db
		recordRepo = repository.NewRecordRepository(db)
		log.Info("Connected to Postgres, archiving crawl records")
	}

	out := io.WriteCloser(os.Stdout)
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		out = f
		container.out = f
	}

	pageCrawler := crawler.New(contentStore, guard, classify.NewClassifier(), cfg.Crawl.MaxWorkers)
	container.Crawler = pageCrawler

	container.Service = service.NewService(
		pageCrawler,
		recordRepo,
		out,
		cfg.Site.Name,
		cfg.Site.RootURL(),
	)

	return container, nil
}

// Run executes the crawl-and-render pipeline, bounded by the configured
// overall deadline when one is set.
func (c *Container) Run(ctx context.Context) error {
	if c.Config.Crawl.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.Config.Crawl.Deadline)*time.Second)
		defer cancel()
	}

	return c.Service.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}
	if c.out != nil {
		return c.out.Close()
	}
	return nil
}
