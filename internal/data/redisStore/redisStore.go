package redisStore

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"

	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type Store struct {
	client *redis.Client
	Type   int
	logger *logger_i.Logger
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewStore connects to one logical Redis database and pings it before
// handing the store back.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	logger := logger_i.NewLogger("Redis Store")

	newClient := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    opts.DB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", err.Error())
		return nil, goerr.Wrap(err, "redis unreachable", goerr.V("addr", opts.Addr), goerr.V("db", opts.DB))
	}

	logger.Info("Redis Store init successfully", "db", opts.DB)

	return &Store{
		client: newClient,
		Type:   opts.DB,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	s.logger.Info("Closing Redis Store", "db", s.Type)
	return s.client.Close()
}

// Only in a _test.go file or behind a build tag
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("Redis Store"),
	}
}
