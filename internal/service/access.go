package service

import (
	"net/url"

	"github.com/aegiscare/hms/internal/domain"
)

const loginPath = "/auth/login"

// Decision is the typed outcome of an authorization check. Deny carries the
// redirect target so the presentation layer can route the user instead of
// showing a generic error: unauthenticated callers go to login with a
// return-target hint, authenticated-but-wrong-role callers go back to their
// own role's dashboard.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

// Authorize checks the principal against the allowed role set. Role
// comparison is case-insensitive. A nil principal is an unauthenticated
// caller; target is the operation they were trying to reach.
func Authorize(p *domain.Principal, target string, allowed ...domain.Role) Decision {
	if p == nil {
		redirect := loginPath
		if target != "" {
			redirect += "?next=" + url.QueryEscape(target)
		}
		return Decision{Allowed: false, RedirectTo: redirect}
	}

	if p.HasRole(allowed...) {
		return Allow()
	}

	return Decision{Allowed: false, RedirectTo: p.Role.DashboardPath()}
}
