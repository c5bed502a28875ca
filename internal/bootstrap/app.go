package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/answers"
	googleauth "interview-backend/internal/auth"
	"interview-backend/internal/interviews"
	"interview-backend/internal/jobdocs"
	"interview-backend/internal/llm"
	gemini "interview-backend/internal/llm/gemini"
	openai "interview-backend/internal/llm/openai"
	"interview-backend/internal/queue"
	"interview-backend/internal/schedule"
	"interview-backend/internal/shared/config"
	"interview-backend/internal/shared/server"
	"interview-backend/internal/shared/storage/db"
	"interview-backend/internal/shared/storage/object"
	localstore "interview-backend/internal/shared/storage/object/local"
	s3store "interview-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	LLM    llm.Client

	InterviewsRepo interviews.InterviewsRepo
	AnswersRepo    answers.AnswersRepo
	SchedulesRepo  schedule.SchedulesRepo
	JobDocsRepo    jobdocs.JobDocsRepo

	Interviews *interviews.Service
	Answers    *answers.Service
	Schedules  *schedule.Service
	JobDocs    *jobdocs.Service

	InterviewHandler *interviews.Handler
	AnswerHandler    *answers.Handler
	ScheduleHandler  *schedule.Handler
	JobDocHandler    *jobdocs.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		InterviewHandler: app.InterviewHandler,
		AnswerHandler:    app.AnswerHandler,
		ScheduleHandler:  app.ScheduleHandler,
		JobDocHandler:    app.JobDocHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("IB_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, "")
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GEMINI_API_KEY empty; question generation and scoring disabled")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.InterviewsRepo = &interviews.PGRepo{DB: app.DB}
		app.AnswersRepo = &answers.PGRepo{DB: app.DB}
		app.SchedulesRepo = &schedule.PGRepo{DB: app.DB}
		app.JobDocsRepo = &jobdocs.PGRepo{DB: app.DB}
	} else {
		app.InterviewsRepo = interviews.NewMemoryRepo()
		app.AnswersRepo = answers.NewMemoryRepo()
		app.SchedulesRepo = schedule.NewMemoryRepo()
		app.JobDocsRepo = jobdocs.NewMemoryRepo()
	}

	app.Interviews = interviews.NewService(app.InterviewsRepo, app.LLM, app.Queue, app.Config.QuestionCount)
	app.Answers = answers.NewService(app.AnswersRepo)
	app.Schedules = schedule.NewService(app.SchedulesRepo)
	app.JobDocs = &jobdocs.Service{Store: app.Store, Repo: app.JobDocsRepo}

	app.InterviewHandler = interviews.NewHandler(app.Interviews)
	app.AnswerHandler = answers.NewHandler(app.Answers)
	app.ScheduleHandler = schedule.NewHandler(app.Schedules)
	app.JobDocHandler = jobdocs.NewHandler(app.JobDocs)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
}
