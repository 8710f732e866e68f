package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/eytgaming/eytgaming/internal/dependencies/clock"
	"github.com/eytgaming/eytgaming/internal/dependencies/random"
	"github.com/eytgaming/eytgaming/internal/services/account"
	"github.com/eytgaming/eytgaming/internal/services/bundle"
	"github.com/eytgaming/eytgaming/internal/services/gameprofile"
	"github.com/eytgaming/eytgaming/internal/services/payment"
	"github.com/eytgaming/eytgaming/internal/services/team"
	"github.com/eytgaming/eytgaming/internal/services/visibility"
	"github.com/eytgaming/eytgaming/internal/storage"
	"github.com/eytgaming/eytgaming/internal/storage/memory"
	redisstorage "github.com/eytgaming/eytgaming/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AccountService     *account.Service
	GameProfileService *gameprofile.Service
	PaymentService     *payment.Service
	TeamService        *team.Service
	BundleService      *bundle.Service
	VisibilityGate     *visibility.Gate
}

// Config holds configuration for the application factory
type Config struct {
	// AccountConfig holds configuration for the account service (optional)
	// If zero value, defaults to account.DefaultConfig()
	AccountConfig account.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default account config if not provided
	accountCfg := cfg.AccountConfig
	if accountCfg.SessionDuration == 0 {
		accountCfg = account.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, accountCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, accountCfg account.Config, logger *slog.Logger) *App {
	// Create services
	accountService := account.New(store, clk, accountCfg, logger)
	profileService := gameprofile.New(store, clk, logger)
	paymentService := payment.New(store, clk, logger)
	teamService := team.New(store, clk, rnd, logger)
	bundleService := bundle.New(store, accountService, logger)
	gate := visibility.New()

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		AccountService:     accountService,
		GameProfileService: profileService,
		PaymentService:     paymentService,
		TeamService:        teamService,
		BundleService:      bundleService,
		VisibilityGate:     gate,
	}
}
