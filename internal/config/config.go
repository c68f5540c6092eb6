package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Provider and store selectors validated by Load.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	VectorStoreQdrant = "qdrant"
	VectorStoreMemory = "memory"

	ArtifactStoreGCS   = "gcs"
	ArtifactStoreLocal = "local"

	MetadataStoreFirestore = "firestore"
	MetadataStoreMemory    = "memory"

	EvalStoreRedis  = "redis"
	EvalStoreMemory = "memory"
)

// Config is built once from the environment and handed to the composition
// root. Nothing reads env vars after Load returns.
type Config struct {
	Environment string
	ListenAddr  string

	AuthToken    string
	NoAuthBypass bool

	EmbedProvider string
	LLMProvider   string

	GoogleAPIKey         string
	GeminiModelName      string
	GoogleEmbeddingModel string
	OpenAIAPIKey         string
	OpenAILLMModel       string
	OpenAIEmbeddingModel string

	VectorStore      string
	QdrantHost       string
	QdrantPort       int
	QdrantUseTLS     bool
	VectorCollection string

	ArtifactStore string
	GCSBucket     string
	RawPrefix     string
	DerivedPrefix string
	LocalDataDir  string

	MetadataStore       string
	FirestoreProject    string
	FirestoreCollection string

	EvalStore     string
	RedisAddr     string
	RedisPassword string

	EvalScorerURL string

	TopK           int
	MaxChunkTokens int
	ChunkOverlap   int
}

func Load() (Config, error) {
	cfg := Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ListenAddr:  getEnv("LISTEN_ADDR", ServerListenAddr),

		AuthToken:    os.Getenv("AUTH_TOKEN"),
		NoAuthBypass: getBool("NO_AUTH_BYPASS", false),

		EmbedProvider: strings.ToLower(getEnv("EMBED_PROVIDER", ProviderGemini)),
		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),

		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		GeminiModelName:      getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite-preview-09-2025"),
		GoogleEmbeddingModel: getEnv("GOOGLE_EMBEDDING_MODEL", "gemini-embedding-001"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAILLMModel:       getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),

		VectorStore:      strings.ToLower(getEnv("VECTOR_STORE", VectorStoreMemory)),
		QdrantHost:       getEnv("QDRANT_HOST", "127.0.0.1"),
		QdrantPort:       getInt("QDRANT_PORT", QdrantGrpcPort),
		QdrantUseTLS:     getBool("QDRANT_USE_TLS", false),
		VectorCollection: getEnv("VECTOR_COLLECTION", "meeting-chunks"),

		ArtifactStore: strings.ToLower(getEnv("ARTIFACT_STORE", ArtifactStoreLocal)),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		RawPrefix:     getEnv("RAW_PREFIX", "raw"),
		DerivedPrefix: getEnv("DERIVED_PREFIX", "derived"),
		LocalDataDir:  getEnv("LOCAL_DATA_DIR", "meeting_data"),

		MetadataStore:       strings.ToLower(getEnv("METADATA_STORE", MetadataStoreMemory)),
		FirestoreProject:    os.Getenv("FIRESTORE_PROJECT"),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "meetings"),

		EvalStore:     strings.ToLower(getEnv("EVAL_STORE", EvalStoreMemory)),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		EvalScorerURL: os.Getenv("EVAL_SCORER_URL"),

		TopK:           getInt("QUERY_TOP_K", 10),
		MaxChunkTokens: getInt("MAX_CHUNK_TOKENS", 512),
		ChunkOverlap:   getInt("CHUNK_OVERLAP", 1),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.Environment == "production"
}

func (c Config) validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Environment)
	}

	if err := validateChoice("EMBED_PROVIDER", c.EmbedProvider, ProviderGemini, ProviderOpenAI); err != nil {
		return err
	}
	if err := validateChoice("LLM_PROVIDER", c.LLMProvider, ProviderGemini, ProviderOpenAI); err != nil {
		return err
	}
	if (c.EmbedProvider == ProviderGemini || c.LLMProvider == ProviderGemini) && c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required when a gemini provider is selected")
	}
	if (c.EmbedProvider == ProviderOpenAI || c.LLMProvider == ProviderOpenAI) && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when an openai provider is selected")
	}

	if err := validateChoice("VECTOR_STORE", c.VectorStore, VectorStoreQdrant, VectorStoreMemory); err != nil {
		return err
	}
	if err := validateChoice("ARTIFACT_STORE", c.ArtifactStore, ArtifactStoreGCS, ArtifactStoreLocal); err != nil {
		return err
	}
	if c.ArtifactStore == ArtifactStoreGCS && c.GCSBucket == "" {
		return fmt.Errorf("GCS_BUCKET is required when ARTIFACT_STORE=gcs")
	}
	if err := validateChoice("METADATA_STORE", c.MetadataStore, MetadataStoreFirestore, MetadataStoreMemory); err != nil {
		return err
	}
	if c.MetadataStore == MetadataStoreFirestore && c.FirestoreProject == "" {
		return fmt.Errorf("FIRESTORE_PROJECT is required when METADATA_STORE=firestore")
	}
	if err := validateChoice("EVAL_STORE", c.EvalStore, EvalStoreRedis, EvalStoreMemory); err != nil {
		return err
	}

	if !c.NoAuthBypass && c.AuthToken == "" {
		return fmt.Errorf("AUTH_TOKEN is required unless NO_AUTH_BYPASS=true")
	}
	if c.TopK < 1 {
		return fmt.Errorf("QUERY_TOP_K must be at least 1")
	}
	if c.MaxChunkTokens < 1 {
		return fmt.Errorf("MAX_CHUNK_TOKENS must be at least 1")
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP cannot be negative")
	}
	return nil
}

func validateChoice(name, got string, allowed ...string) error {
	for _, a := range allowed {
		if got == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got %q", name, allowed, got)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
