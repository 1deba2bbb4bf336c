package service

import (
	"log/slog"

	postgres "github.com/kirinyoku/courtbook/internal/repository/postgres"
	redis "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/service/booking"
	"github.com/kirinyoku/courtbook/internal/service/facility"
	"github.com/kirinyoku/courtbook/internal/service/profile"
	"github.com/kirinyoku/courtbook/internal/service/query"
)

type Services struct {
	Booking  *booking.Service
	Facility *facility.Service
	Query    *query.Service
	Profile  *profile.Service
}

type Config struct {
	Facility facility.Config
	Query    query.Config
}

// Deps are the collaborators shared by the services. Limiter, PubSub and
// Events may be nil.
type Deps struct {
	Store   *postgres.Store
	Cache   *redis.Cache
	PubSub  *redis.CourtsPubSub
	Limiter booking.RateLimiter
	Events  booking.EventPublisher
	Logger  *slog.Logger
}

func NewServices(d Deps, cfg Config) *Services {
	var notifier booking.CourtNotifier
	if d.PubSub != nil {
		notifier = d.PubSub
	}

	return &Services{
		Booking:  booking.New(d.Store, d.Cache, notifier, d.Limiter, d.Events, d.Logger),
		Facility: facility.New(d.Store, d.Cache, notifier, d.Events, cfg.Facility, d.Logger),
		Query:    query.New(d.Store, d.Cache, cfg.Query),
		Profile:  profile.New(d.Store),
	}
}
