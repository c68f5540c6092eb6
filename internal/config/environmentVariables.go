package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	EmbeddingOutputDimensionality int32 = 1536

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	IngestJobTimeout                = 5 * time.Minute

	//serverTimeouts
	//WriteTimeout covers the evaluate endpoint, which runs a full query
	//plus a scorer round trip synchronously
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 180 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantGrpcPort         = 6334
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//http pooling for the eval scorer client
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
	ScorerRequestTimeout = 120 * time.Second

	//redis has 16 DB we can use
	RedisJobStoreDB  = 0
	RedisEvalStoreDB = 1

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour

	//guardrails
	MaxGroundingContexts = 5

	//upserts to the vector store are sent in fixed-size batches
	VectorUpsertBatchSize = 100
)
