package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/ats"
	"interview-coach/internal/interview"
	"interview-coach/internal/jobs"
	"interview-coach/internal/llm"
	"interview-coach/internal/llm/bedrock"
	"interview-coach/internal/llm/gemini"
	"interview-coach/internal/llm/openai"
	"interview-coach/internal/profiles"
	"interview-coach/internal/queue"
	"interview-coach/internal/resumes"
	"interview-coach/internal/shared/config"
	"interview-coach/internal/shared/server"
	"interview-coach/internal/shared/storage/db"
	localstore "interview-coach/internal/shared/storage/object/local"
	s3store "interview-coach/internal/shared/storage/object/s3"
	"interview-coach/internal/shared/telemetry"
)

const defaultProfileKey = "user_profiles.json"

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	LLM    llm.Client
	Queue  queue.Client

	Resumes   *resumes.Service
	ATS       *ats.Service
	Interview *interview.Service
	Jobs      *jobs.Service
	Profiles  *profiles.Service

	closers []io.Closer
}

// Overrides replaces selected collaborators, mainly for tests.
type Overrides struct {
	LLM      llm.Client
	Searcher jobs.Searcher
	Backend  profiles.Backend
	Queue    queue.Client
}

// Build wires every service from cfg.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	return BuildWith(ctx, cfg, Overrides{})
}

// BuildWith wires every service from cfg, preferring any non-nil override.
func BuildWith(ctx context.Context, cfg config.Config, o Overrides) (*App, error) {
	app := &App{Config: cfg}

	app.LLM = o.LLM
	if app.LLM == nil {
		app.LLM = buildLLM(ctx, cfg)
	}

	catalog, err := jobs.LoadCatalog(cfg.JobCatalogPath)
	if err != nil {
		return nil, err
	}

	searcher := o.Searcher
	if searcher == nil {
		searcher = buildSearcher(cfg)
	}

	app.Queue = o.Queue
	if app.Queue == nil {
		if app.Queue, err = app.buildQueue(ctx, cfg); err != nil {
			return nil, err
		}
	}

	backend := o.Backend
	if backend == nil {
		if backend, err = app.buildProfileBackend(ctx, cfg); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	app.Resumes = resumes.NewService(app.LLM)
	app.ATS = ats.NewService(app.LLM)
	app.Interview = interview.NewService(app.LLM)
	app.Profiles = profiles.NewService(ctx, backend, app.Queue)
	app.Jobs = jobs.NewService(catalog, searcher, app.Profiles, cfg.JobSearchLocation, cfg.JobSearchTimeout)

	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Handlers: []server.RouteRegistrar{
			resumes.NewHandler(app.Resumes, int64(cfg.MaxUploadMB)<<20),
			ats.NewHandler(app.ATS),
			interview.NewHandler(app.Interview),
			jobs.NewHandler(app.Jobs),
			profiles.NewHandler(app.Profiles),
		},
	})

	return app, nil
}

// Close releases broker and database connections.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	var (
		client llm.Client
		err    error
	)
	switch cfg.LLMProvider {
	case "none":
		return llm.Unavailable{Reason: "LLM_PROVIDER=none"}
	case "openai":
		client, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	case "gemini":
		client, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		client, err = bedrock.NewClient(ctx, cfg.AWSRegion, cfg.LLMModel)
	}
	if err != nil {
		telemetry.Warn("bootstrap.llm.unavailable", map[string]any{
			"provider": cfg.LLMProvider,
			"error":    err,
		})
		return llm.Unavailable{Reason: err.Error()}
	}
	telemetry.Info("bootstrap.llm.ready", map[string]any{"provider": cfg.LLMProvider})
	return llm.WithTimeout(client, cfg.LLMTimeout)
}

func buildSearcher(cfg config.Config) jobs.Searcher {
	if cfg.SerpAPIKey == "" {
		telemetry.Info("bootstrap.search.fallback_only", nil)
		return nil
	}
	client, err := jobs.NewSerpAPIClient(cfg.SerpAPIKey, cfg.JobSearchTimeout)
	if err != nil {
		telemetry.Warn("bootstrap.search.unavailable", map[string]any{"error": err})
		return nil
	}
	return client
}

func (a *App) buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	switch {
	case cfg.AMQPURL != "":
		client, err := queue.NewAMQPClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("amqp: %w", err)
		}
		a.closers = append(a.closers, client)
		return client, nil
	case cfg.SQSQueueURL != "":
		client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
		if err != nil {
			return nil, fmt.Errorf("sqs: %w", err)
		}
		return client, nil
	default:
		return queue.Nop{}, nil
	}
}

func (a *App) buildProfileBackend(ctx context.Context, cfg config.Config) (profiles.Backend, error) {
	switch cfg.ProfileStore {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PROFILE_STORE=postgres requires DATABASE_URL")
		}
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Warn("bootstrap.db.connect_failed", map[string]any{"error": err, "fallback": "file"})
			return fileBackend(cfg.ProfileFile), nil
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			telemetry.Warn("bootstrap.db.migrate_failed", map[string]any{"error": err, "fallback": "file"})
			return fileBackend(cfg.ProfileFile), nil
		}
		a.DB = sqlDB
		a.closers = append(a.closers, sqlDB)
		return profiles.NewPGBackend(sqlDB), nil
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.ProfileS3Bucket, "")
		if err != nil {
			return nil, err
		}
		key := cfg.ProfileS3Key
		if key == "" {
			key = "profiles/" + defaultProfileKey
		}
		return profiles.NewObjectBackend(store, key), nil
	default:
		return fileBackend(cfg.ProfileFile), nil
	}
}

// fileBackend stores the collection as a single JSON file.
func fileBackend(path string) profiles.Backend {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join("data", defaultProfileKey)
	}
	return profiles.NewObjectBackend(localstore.New(filepath.Dir(path)), filepath.Base(path))
}
