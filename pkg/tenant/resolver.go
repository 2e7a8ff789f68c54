package tenant

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/cache"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
)

// Outcome classifies what a hostname resolved to.
type Outcome string

const (
	// OutcomeResolved means the host addressed a known tenant.
	OutcomeResolved Outcome = "resolved"
	// OutcomeNotFound means the host addressed a tenant subdomain that does
	// not exist.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeReserved means the host used a platform label (www, api, ...)
	// that can never name a tenant.
	OutcomeReserved Outcome = "reserved"
	// OutcomePassThrough means the host does not address a tenant at all.
	OutcomePassThrough Outcome = "pass_through"
)

// Resolution is the result of mapping a request host to a tenant.
type Resolution struct {
	Outcome      Outcome
	Subdomain    string
	Organization *api.OrganizationResponse
}

type Resolver interface {
	// Resolve maps a request host to a tenant. It only returns an error on
	// transient failures (database down), never for unknown subdomains.
	Resolve(ctx context.Context, host string) (Resolution, error)
}

type resolver struct {
	daoReg *dao.DaoRegistry
	cache  cache.Cache
}

func NewResolver(daoReg *dao.DaoRegistry, cache cache.Cache) Resolver {
	return &resolver{daoReg: daoReg, cache: cache}
}

func (r *resolver) Resolve(ctx context.Context, host string) (Resolution, error) {
	subdomain := ExtractSubdomain(host, config.Get().Tenancy.RootDomain)
	if subdomain == "" {
		return Resolution{Outcome: OutcomePassThrough}, nil
	}
	if IsReserved(subdomain) {
		return Resolution{Outcome: OutcomeReserved, Subdomain: subdomain}, nil
	}

	org, err := r.cache.GetOrganizationBySubdomain(ctx, subdomain)
	if err == nil {
		if org == nil {
			// A cached nil records a recent miss.
			return Resolution{Outcome: OutcomeNotFound, Subdomain: subdomain}, nil
		}
		return Resolution{Outcome: OutcomeResolved, Subdomain: subdomain, Organization: org}, nil
	}
	if !errors.Is(err, cache.NotFound) {
		log.Logger.Error().Err(err).Msg("tenant cache lookup failed")
	}

	fetched, err := r.daoReg.Organization.FetchBySubdomain(ctx, subdomain)
	if err != nil {
		daoErr := &ce.DaoError{}
		if errors.As(err, &daoErr) && daoErr.NotFound {
			if cacheErr := r.cache.SetOrganizationBySubdomain(ctx, subdomain, nil); cacheErr != nil {
				log.Logger.Error().Err(cacheErr).Msg("could not cache tenant miss")
			}
			return Resolution{Outcome: OutcomeNotFound, Subdomain: subdomain}, nil
		}
		return Resolution{}, err
	}

	if cacheErr := r.cache.SetOrganizationBySubdomain(ctx, subdomain, &fetched); cacheErr != nil {
		log.Logger.Error().Err(cacheErr).Msg("could not cache tenant")
	}
	return Resolution{Outcome: OutcomeResolved, Subdomain: subdomain, Organization: &fetched}, nil
}
