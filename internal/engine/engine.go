package engine

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"recipeapp.com/internal/auth"
	"recipeapp.com/internal/config"
	"recipeapp.com/internal/constants"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/event"
	"recipeapp.com/internal/infra"
	"recipeapp.com/internal/metrics"
	"recipeapp.com/internal/service"
)

// Engine wires infrastructure and services and owns the event bus:
// 1. subscribes the metrics and audit handlers to domain events
// 2. hands the services to the HTTP layer
type Engine struct {
	cfg *config.Config

	// infrastructure
	db       *gorm.DB
	rdb      *redis.Client
	bus      *event.Bus
	enforcer *casbin.Enforcer
	metrics  *metrics.Metrics

	// services
	userService   *service.UserServiceImpl
	recipeService *service.RecipeServiceImpl
	tokens        *auth.TokenManager
}

// NewEngine builds the services. rdb may be nil, which disables logout.
func NewEngine(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Engine, error) {
	enforcer, err := auth.InitCasbin(db)
	if err != nil {
		return nil, err
	}

	var blocklist domain.TokenBlocklist
	if rdb != nil {
		blocklist = infra.NewRedisTokenBlocklist(rdb)
	}

	bus := event.NewBus(1000)
	e := &Engine{
		cfg:           cfg,
		db:            db,
		rdb:           rdb,
		bus:           bus,
		enforcer:      enforcer,
		metrics:       metrics.New(),
		userService:   service.NewUserService(db, bus),
		recipeService: service.NewRecipeService(db, bus),
		tokens:        auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, blocklist),
	}
	return e, nil
}

// Start registers the event subscribers.
func (e *Engine) Start() {
	slog.Info("Engine: starting")

	for _, t := range []string{
		constants.EventUserCreated,
		constants.EventUserDeleted,
		constants.EventRecipeCreated,
		constants.EventRecipeUpdated,
		constants.EventRecipeDeleted,
	} {
		e.bus.Subscribe(t, e.metrics.CountEvent)
		e.bus.Subscribe(t, auditLog)
	}

	slog.Info("Engine: started")
}

// Stop drains the event bus.
func (e *Engine) Stop() {
	slog.Info("Engine: stopping")
	e.bus.Shutdown()
}

func auditLog(ctx context.Context, ev event.Event) error {
	slog.Info("audit", "event", ev.Type, "actor_id", ev.ActorID, "subject_id", ev.SubjectID, "at", ev.Timestamp)
	return nil
}

func (e *Engine) Config() *config.Config { return e.cfg }
func (e *Engine) DB() *gorm.DB { return e.db }
func (e *Engine) Enforcer() *casbin.Enforcer { return e.enforcer }
func (e *Engine) Metrics() *metrics.Metrics { return e.metrics }
func (e *Engine) UserService() *service.UserServiceImpl { return e.userService }
func (e *Engine) RecipeService() *service.RecipeServiceImpl { return e.recipeService }
func (e *Engine) Tokens() *auth.TokenManager { return e.tokens }
