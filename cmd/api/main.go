package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/svalluru/MeetingsAPI/internal/config"
	"github.com/svalluru/MeetingsAPI/internal/data/artifactStore"
	"github.com/svalluru/MeetingsAPI/internal/data/evalStore"
	"github.com/svalluru/MeetingsAPI/internal/data/metadataStore"
	"github.com/svalluru/MeetingsAPI/internal/data/redisStore"
	"github.com/svalluru/MeetingsAPI/internal/data/store"
	jobmodel "github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/evalscorer"
	"github.com/svalluru/MeetingsAPI/internal/handlers"
	"github.com/svalluru/MeetingsAPI/internal/job"
	"github.com/svalluru/MeetingsAPI/internal/middleware"
	"github.com/svalluru/MeetingsAPI/internal/rag"
	"github.com/svalluru/MeetingsAPI/internal/rag/embedding"
	"github.com/svalluru/MeetingsAPI/internal/rag/embedding/googleEmbedding"
	"github.com/svalluru/MeetingsAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/svalluru/MeetingsAPI/internal/rag/evaluation"
	"github.com/svalluru/MeetingsAPI/internal/rag/guardrail"
	"github.com/svalluru/MeetingsAPI/internal/rag/ingest"
	"github.com/svalluru/MeetingsAPI/internal/rag/llm"
	"github.com/svalluru/MeetingsAPI/internal/rag/llm/gemini"
	"github.com/svalluru/MeetingsAPI/internal/rag/llm/openai"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB/memoryDB"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/svalluru/MeetingsAPI/internal/server"
	"github.com/svalluru/MeetingsAPI/internal/worker"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		println("invalid configuration:", err.Error())
		os.Exit(1)
	}

	logger_i.Init(cfg.IsProd())
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", cfg.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          buildJobStore(serviceContext, cfg, logger),
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	vectorStore := buildVectorStore(serviceContext, cfg, logger)
	artifacts := buildArtifactStore(serviceContext, cfg, logger)
	metadata := buildMetadataStore(serviceContext, cfg, logger)
	evalResults := buildEvalStore(serviceContext, cfg, logger)
	embedder := buildEmbedder(serviceContext, cfg, logger)
	llmProvider := buildLLMProvider(serviceContext, cfg, logger)

	if vectorStore == nil || artifacts == nil || metadata == nil || evalResults == nil || embedder == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorStore != nil, "ArtifactStore", artifacts != nil,
			"MetadataStore", metadata != nil, "EvalStore", evalResults != nil,
			"EmbeddingService", embedder != nil, "LLMProvider", llmProvider != nil)
		return
	}

	pipeline := ingest.NewPipeline(artifacts, metadata, vectorStore, embedder, cfg.MaxChunkTokens, cfg.ChunkOverlap)
	guardrails := guardrail.NewService(llmProvider)
	ragService := rag.NewService(pipeline, vectorStore, llmProvider, embedder, guardrails, artifacts, cfg.TopK)

	if cfg.EvalScorerURL == "" {
		logger.Warn("EVAL_SCORER_URL not set, evaluations will carry null scores")
	}
	evalService := evaluation.NewService(ragService, evalscorer.NewHTTPClient(cfg.EvalScorerURL), evalResults)

	handler := handlers.NewHandler(service, metadata, ragService, evalService)
	chain := middleware.NewChain(cfg.AuthToken, cfg.NoAuthBypass)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler, chain)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildJobStore(ctx context.Context, cfg config.Config, logger *logger_i.Logger) jobmodel.JobStore {
	redis, err := redisStore.NewStore(ctx, redisStore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       config.RedisJobStoreDB,
	})
	if err != nil {
		logger.Error("Redis job store is offline, falling back to memory", "error", err)
		return store.InitInMemoryJobStore()
	}
	return store.NewRedisJobStore(redis)
}

func buildVectorStore(ctx context.Context, cfg config.Config, logger *logger_i.Logger) vectorDB.Store {
	if cfg.VectorStore != config.VectorStoreQdrant {
		logger.Info("Using in-memory vector store")
		return memoryDB.NewMemoryStore()
	}
	qdrant, err := qdrantDB.NewQdrantStore(qdrantDB.Options{
		Host:       cfg.QdrantHost,
		Port:       cfg.QdrantPort,
		UseTLS:     cfg.QdrantUseTLS,
		Collection: cfg.VectorCollection,
		Dimension:  uint64(config.EmbeddingOutputDimensionality),
	})
	if err != nil {
		logger.Error("Could not connect to qdrant", "error", err)
		return nil
	}
	if err := qdrant.EnsureReady(ctx); err != nil {
		logger.Error("Could not prepare qdrant collection", "error", err)
		return nil
	}
	return qdrant
}

func buildArtifactStore(ctx context.Context, cfg config.Config, logger *logger_i.Logger) artifactStore.Store {
	if cfg.ArtifactStore != config.ArtifactStoreGCS {
		local, err := artifactStore.NewLocalStore(cfg.LocalDataDir)
		if err != nil {
			logger.Error("Could not prepare local artifact store", "error", err)
			return nil
		}
		return local
	}
	gcs, err := artifactStore.NewGCSStore(ctx, cfg.GCSBucket, cfg.RawPrefix, cfg.DerivedPrefix)
	if err != nil {
		logger.Error("Could not connect to GCS", "error", err)
		return nil
	}
	return gcs
}

func buildMetadataStore(ctx context.Context, cfg config.Config, logger *logger_i.Logger) metadataStore.Store {
	if cfg.MetadataStore != config.MetadataStoreFirestore {
		logger.Info("Using in-memory metadata store")
		return metadataStore.NewMemoryStore()
	}
	firestore, err := metadataStore.NewFirestoreStore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection)
	if err != nil {
		logger.Error("Could not connect to firestore", "error", err)
		return nil
	}
	return firestore
}

func buildEvalStore(ctx context.Context, cfg config.Config, logger *logger_i.Logger) evalStore.Store {
	if cfg.EvalStore != config.EvalStoreRedis {
		logger.Info("Using in-memory evaluation store")
		return evalStore.NewMemoryEvalStore()
	}
	redis, err := redisStore.NewStore(ctx, redisStore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       config.RedisEvalStoreDB,
	})
	if err != nil {
		logger.Error("Redis eval store is offline", "error", err)
		return nil
	}
	return evalStore.NewRedisEvalStore(redis)
}

func buildEmbedder(ctx context.Context, cfg config.Config, logger *logger_i.Logger) embedding.Embedder {
	var embedder embedding.Embedder
	var err error
	if cfg.EmbedProvider == config.ProviderOpenAI {
		embedder, err = openaiEmbedding.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel)
	} else {
		embedder, err = googleEmbedding.NewGoogleEmbedder(ctx, cfg.GoogleEmbeddingModel, cfg.GoogleAPIKey, config.EmbeddingOutputDimensionality)
	}
	if err != nil {
		logger.Error("Could not initialize embedding provider", "provider", cfg.EmbedProvider, "error", err)
		return nil
	}
	return embedder
}

func buildLLMProvider(ctx context.Context, cfg config.Config, logger *logger_i.Logger) llm.Provider {
	var provider llm.Provider
	var err error
	if cfg.LLMProvider == config.ProviderOpenAI {
		provider, err = openai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAILLMModel)
	} else {
		provider, err = gemini.NewGeminiClient(ctx, cfg.GeminiModelName, cfg.GoogleAPIKey)
	}
	if err != nil {
		logger.Error("Could not initialize llm provider", "provider", cfg.LLMProvider, "error", err)
		return nil
	}
	return provider
}
