package api

import (
	"os"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/db"
	"squadron-ops/airboss/internal/db/repositories"
	"squadron-ops/airboss/internal/logging"
	"squadron-ops/airboss/internal/metrics"
	"squadron-ops/airboss/internal/services"
)

type Repositories struct {
	Pilots   *repositories.PilotRepository
	Currency *repositories.CurrencyRepository
	Keys     *repositories.KeysRepo
}

type Services struct {
	Cache     common.CacheInterface
	Scheduler *services.SchedulerService
	Readiness *services.ReadinessService
	Currency  *services.CurrencyService
	Calendar  *services.CalendarService
	Roster    *services.RosterService
	Events    *services.EventsService
	Resources *services.ResourcesService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Pilots:   repositories.NewPilotRepository(db.DB),
		Currency: repositories.NewCurrencyRepository(db.DB),
		Keys:     repositories.NewApiKeysRepo(db.DB),
	}

	// Redis when configured, in-memory otherwise. Both sit behind
	// CacheInterface so the services never know which one they got.
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisSvc, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(60, 600)
		} else {
			cacheSvc = redisSvc
		}
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	svcs := &Services{
		Cache:     cacheSvc,
		Scheduler: services.NewSchedulerService(db.PgDB),
		Readiness: services.NewReadinessService(db.PgDB, cacheSvc),
		Currency:  services.NewCurrencyService(db.PgDB),
		Calendar:  services.NewCalendarService(db.PgDB),
		Roster:    services.NewRosterService(db.PgDB, cacheSvc),
		Events:    services.NewEventsService(db.PgDB),
		Resources: services.NewResourcesService(db.PgDB),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
