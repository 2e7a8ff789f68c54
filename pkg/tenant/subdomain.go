// Package tenant resolves request hostnames to organizations. A hostname
// like acme.example.com maps to the organization whose subdomain is "acme";
// hosts on the bare root domain, reserved labels and unknown domains are
// left for the default site.
package tenant

import (
	"net"
	"strings"

	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/utils"
)

// ExtractSubdomain returns the candidate tenant label for a request host, or
// "" when the host does not address a tenant. The host may carry a port.
//
// Rules, in order:
//   - hosts are matched case insensitively and without the port
//   - "localhost" and ip addresses carry no tenant
//   - "sub.localhost" maps to "sub" for local development
//   - the bare root domain and "www.<root>" carry no tenant
//   - "<label>.<root>" maps to "<label>", with a leading "www." stripped
//     first so "www.acme.<root>" still maps to "acme"
//   - hosts outside the root domain carry no tenant
func ExtractSubdomain(host string, rootDomain string) string {
	host = strings.ToLower(strings.TrimSuffix(stripPort(host), "."))
	rootDomain = strings.ToLower(rootDomain)

	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}

	// Local development convenience, sub.localhost addresses tenant "sub".
	if strings.HasSuffix(host, ".localhost") {
		return firstLabel(strings.TrimSuffix(host, ".localhost"))
	}

	if rootDomain == "" || host == rootDomain || host == "www."+rootDomain {
		return ""
	}

	if !strings.HasSuffix(host, "."+rootDomain) {
		return ""
	}

	remainder := strings.TrimSuffix(host, "."+rootDomain)
	remainder = strings.TrimPrefix(remainder, "www.")
	return firstLabel(remainder)
}

// firstLabel returns the leftmost dns label of a possibly dotted name.
func firstLabel(name string) string {
	if name == "" {
		return ""
	}
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// IsReserved reports whether a subdomain label is reserved for the platform
// itself and can never name a tenant.
func IsReserved(subdomain string) bool {
	c := config.Get()
	if subdomain == "" {
		return true
	}
	if c.Tenancy.BaseAlias != "" && subdomain == c.Tenancy.BaseAlias {
		return true
	}
	return utils.Contains(c.Tenancy.ReservedSubdomains, subdomain)
}
