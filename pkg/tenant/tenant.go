package tenant

import (
	"net"
	"net/url"
	"strings"
)

// Resolver derives a tenant slug from a request host. One rule table is shared
// by the storefront and the chat widget; the only caller-visible difference is
// whether a "store" query override is supplied.
type Resolver struct {
	RootDomain    string // e.g. "getmait.dk"
	PreviewDomain string // e.g. "sslip.io"
	DefaultSlug   string // e.g. "napoli-esbjerg"
}

// Resolve applies the rules in order:
//  1. host under the root domain -> label preceding ".<root domain>"
//  2. host under the preview wildcard-DNS domain -> first dot-delimited label
//  3. localhost or a bare IPv4 address -> "store" query param, else default
//  4. anything else -> first dot-delimited label
//
// Slugs are used for exact-match lookups against the backend; no case folding
// or trimming beyond string splitting.
func (r Resolver) Resolve(host string, query url.Values) string {
	host = stripPort(host)

	switch {
	case strings.Contains(host, r.RootDomain):
		return strings.Split(host, "."+r.RootDomain)[0]
	case strings.Contains(host, r.PreviewDomain):
		return strings.Split(host, ".")[0]
	case strings.Contains(host, "localhost") || isIPv4(host):
		if s := query.Get("store"); s != "" {
			return s
		}
		return r.DefaultSlug
	default:
		return strings.Split(host, ".")[0]
	}
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func isIPv4(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.To4() != nil
}
