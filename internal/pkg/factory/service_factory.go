package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"replymate/internal/adapters/backend"
	"replymate/internal/adapters/events/inproc"
	"replymate/internal/adapters/storage/sqlite"
	"replymate/internal/domain/metrics"
	"replymate/internal/domain/ports"
	"replymate/internal/domain/services"
	"replymate/internal/pkg/logutil"
	"replymate/pkg/config"
)

// ServiceContainer holds all initialized services
type ServiceContainer struct {
	Storage   ports.StoragePort
	Bus       ports.EventBusPort
	Backend   ports.BackendPort
	Session   *services.Session
	Store     *services.ConversationStore
	Accounts  *services.AccountService
	Replies   *services.ReplyService
	Collector *metrics.Collector
	Logger    *logutil.Logger
}

// InitializationOptions holds options for service initialization
type InitializationOptions struct {
	Config                *config.Config
	ValidateConfiguration bool
	Logger                *logutil.Logger
}

// ServiceFactory provides methods for creating and initializing services
type ServiceFactory struct {
	logger *logutil.Logger
}

// NewServiceFactory creates a new service factory
func NewServiceFactory(logger *logutil.Logger) *ServiceFactory {
	if logger == nil {
		logger = logutil.NewDefaultLogger()
	}
	return &ServiceFactory{logger: logger}
}

// Initialize creates and wires all services based on configuration.
func (sf *ServiceFactory) Initialize(ctx context.Context, opts InitializationOptions) (*ServiceContainer, error) {
	if opts.Logger != nil {
		sf.logger = opts.Logger
	}
	cfg := opts.Config

	if opts.ValidateConfiguration {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		sf.logger.Info("Configuration validation passed")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	storage, err := sqlite.NewAdapter(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := storage.Migrate(ctx); err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to run storage migration: %w", err)
	}
	sf.logger.Info("Storage initialized", logutil.Fields{"path": cfg.Storage.Path})

	bus := inproc.NewAdapter()
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	collector := metrics.NewCollector()

	session := services.NewSession()
	store := services.NewConversationStore(storage, bus)
	accounts := services.NewAccountService(backendClient, store, session, bus, collector)
	replies := services.NewReplyService(backendClient, store, session, collector)

	sf.logger.Info("Services initialized", logutil.Fields{
		"backend": cfg.Backend.BaseURL,
	})

	return &ServiceContainer{
		Storage:   storage,
		Bus:       bus,
		Backend:   backendClient,
		Session:   session,
		Store:     store,
		Accounts:  accounts,
		Replies:   replies,
		Collector: collector,
		Logger:    sf.logger,
	}, nil
}

// Shutdown releases everything the container holds.
func (sc *ServiceContainer) Shutdown() {
	if sc.Bus != nil {
		sc.Bus.Close()
	}
	if sc.Storage != nil {
		sc.Storage.Close()
	}
}
