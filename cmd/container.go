package main

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Ray3n-Hamd1/kariera/internal/ai/completion"
	"github.com/Ray3n-Hamd1/kariera/internal/ai/embeddings"
	"github.com/Ray3n-Hamd1/kariera/internal/config"
	"github.com/Ray3n-Hamd1/kariera/internal/schedule"
	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/matching/matchapi"
	"github.com/Ray3n-Hamd1/kariera/matching/matchinfra"
	"github.com/Ray3n-Hamd1/kariera/matching/matchsrv"
	"github.com/Ray3n-Hamd1/kariera/matching/worker"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
	"github.com/Ray3n-Hamd1/kariera/pkg/textsplit"
	"github.com/Ray3n-Hamd1/kariera/posting"
	"github.com/Ray3n-Hamd1/kariera/posting/postingapi"
	"github.com/Ray3n-Hamd1/kariera/posting/postinginfra"
	"github.com/Ray3n-Hamd1/kariera/posting/postingsrv"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// AI backends
	Embedder  embeddings.Provider
	Completer completion.Completer

	// Ports
	VectorStore matching.VectorStore
	IngestQueue matching.IngestQueue
	PostingRepo posting.Repository

	// Services
	MatchService   *matchsrv.Service
	PostingService *postingsrv.Service

	// Background
	IngestWorker *worker.IngestWorker
	Scheduler    *schedule.Scheduler

	// API Handlers
	MatchHandlers   *matchapi.MatchHandlers
	PostingHandlers *postingapi.PostingHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure(ctx)
	c.initServices(ctx)
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) {
	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AI backends
	c.Embedder, err = embeddings.NewProvider(ctx, embeddings.Config{
		Backend:      c.Config.AI.EmbeddingProvider,
		OpenAIAPIKey: c.Config.AI.OpenAIAPIKey,
		GeminiAPIKey: c.Config.AI.GeminiAPIKey,
		Model:        c.Config.AI.EmbeddingModel,
	})
	if err != nil {
		logx.Fatalf("Failed to initialize embedding provider: %v", err)
	}
	logx.Infof("Embedding provider: %s (%s)", c.Config.AI.EmbeddingProvider, c.Embedder.Model())

	c.Completer, err = completion.NewCompleter(ctx, completion.Config{
		Backend:      c.Config.AI.CompletionProvider,
		OpenAIAPIKey: c.Config.AI.OpenAIAPIKey,
		GeminiAPIKey: c.Config.AI.GeminiAPIKey,
		Model:        c.Config.AI.CompletionModel,
	})
	if err != nil {
		logx.Fatalf("Failed to initialize completion backend: %v", err)
	}
}

func (c *Container) initServices(_ context.Context) {
	// Ports
	c.VectorStore = matchinfra.NewPgVectorStore(c.DB, c.Config.Ingest.VectorTable)
	c.IngestQueue = matchinfra.NewRedisIngestQueue(c.Redis, c.Config.Ingest.QueueName)
	c.PostingRepo = postinginfra.NewPostgresRepository(c.DB)
	resumeSource := matchinfra.NewPostgresResumeSource(c.DB)

	// Matching pipeline
	structurer := matchsrv.NewStructurer(c.Completer)
	formatter := matchsrv.NewFormatter(c.Completer)
	ingester := matchsrv.NewIngester(textsplit.DefaultSplitter(), c.Embedder, c.VectorStore)

	c.MatchService = matchsrv.NewService(
		structurer,
		formatter,
		c.Embedder,
		c.VectorStore,
		resumeSource,
		c.IngestQueue,
	)

	// Postings
	feed := postingsrv.NewSampleFeed(c.Config.Ingest.SampleFeedSize)
	c.PostingService = postingsrv.NewService(c.PostingRepo, feed)

	// Background
	c.IngestWorker = worker.NewIngestWorker(ingester, c.IngestQueue, c.PostingRepo, c.Config.Ingest.Workers)
	c.Scheduler = schedule.New(c.PostingService, c.IngestQueue, c.Config.Ingest.Interval, c.Config.Ingest.PostingMaxAge)

	// Handlers
	c.MatchHandlers = matchapi.NewMatchHandlers(c.MatchService)
	c.PostingHandlers = postingapi.NewPostingHandlers(c.PostingService)
}
