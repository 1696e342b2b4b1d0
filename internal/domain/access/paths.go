package access

import "strings"

const (
	LoginPath   = "/login"
	BillingPath = "/billing"
	AdminPrefix = "/admin"

	// UpgradePath carries the marker the billing page uses to render its
	// upsell variant.
	UpgradePath = "/billing?upgrade=1"
)

// Public paths are gated by authentication, never by billing.
var publicPaths = []string{
	"/login",
	"/logout",
	"/auth",
	"/verify",
}

// Paths that stay reachable under a hard block.
var hardBlockAllowList = []string{
	"/billing",
	"/logout",
	"/login",
	"/verify",
}

func IsPublic(path string) bool {
	return matchAny(path, publicPaths)
}

func IsAdmin(path string) bool {
	return matchPrefix(path, AdminPrefix)
}

func IsAllowListed(path string) bool {
	return matchAny(path, hardBlockAllowList)
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if matchPrefix(path, p) {
			return true
		}
	}
	return false
}

// matchPrefix matches whole path segments: "/billing" covers
// "/billing/history" but not "/billingx".
func matchPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
