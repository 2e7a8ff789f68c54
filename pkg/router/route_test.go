package router

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation"
)

func TestConfigureEcho(t *testing.T) {
	type TestCaseExpected map[string]map[string]string

	testCases := TestCaseExpected{
		"/ping": {
			"GET": "github.com/ticketing-services/ticketing-backend/pkg/handler.ping",
		},
		"/api/ticketing/v1/organizations/": {
			"GET":  "github.com/ticketing-services/ticketing-backend/pkg/handler.(*OrganizationHandler).listOrganizations-fm",
			"POST": "github.com/ticketing-services/ticketing-backend/pkg/handler.(*OrganizationHandler).createOrganization-fm",
		},
		"/api/ticketing/v1.0/organizations/": {
			"GET":  "github.com/ticketing-services/ticketing-backend/pkg/handler.(*OrganizationHandler).listOrganizations-fm",
			"POST": "github.com/ticketing-services/ticketing-backend/pkg/handler.(*OrganizationHandler).createOrganization-fm",
		},
		"/api/ticketing/v1.0/organizations/:org_uuid/tickets/": {
			"GET":  "github.com/ticketing-services/ticketing-backend/pkg/handler.(*TicketHandler).listTickets-fm",
			"POST": "github.com/ticketing-services/ticketing-backend/pkg/handler.(*TicketHandler).createTicket-fm",
		},
	}

	e := ConfigureEcho(true)
	require.NotNil(t, e)

	for path, endpoints := range testCases {
		for method, fnc := range endpoints {
			found := false

			for _, route := range e.Routes() {
				if route.Path == path && method == route.Method {
					found = true
					assert.Equal(t, fnc, route.Name)
				}
			}
			assert.True(t, found, "Could not find route for %v: %v", method, path)
		}
	}
}

func TestEchoWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	var e *echo.Echo
	require.NotPanics(t, func() {
		e = ConfigureEchoWithMetrics(metrics)
	})
	assert.NotNil(t, e)

	// Portal routes live outside the versioned api root.
	found := false
	for _, route := range e.Routes() {
		if route.Path == "/org/:org_uuid/tickets/" && route.Method == "POST" {
			found = true
		}
	}
	assert.True(t, found, "Could not find portal submission route")
}
