// Package gate decides, per navigation, whether to render the requested page,
// redirect, or show a loading placeholder while the credential is resolved.
package gate

import "storefront/internal/route"

// State is the resolved credential state of a request.
type State int

const (
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Decision is what the edge gate does with a navigation.
type Decision int

const (
	Allow Decision = iota
	RedirectSignIn
	RedirectLanding
	Pending
)

func (d Decision) String() string {
	switch d {
	case RedirectSignIn:
		return "redirect_sign_in"
	case RedirectLanding:
		return "redirect_landing"
	case Pending:
		return "pending"
	default:
		return "allow"
	}
}

// Navigation targets.
const (
	SignInPath  = "/login"
	LandingPath = "/home"
)

// Decide is the gate's transition table. Unclassified paths are always
// allowed; otherwise an unresolved credential never redirects.
func Decide(class route.Class, state State) Decision {
	if class == route.Unclassified {
		return Allow
	}
	if state == Unknown {
		return Pending
	}
	switch {
	case class == route.Protected && state == Unauthenticated:
		return RedirectSignIn
	case class == route.Public && state == Authenticated:
		return RedirectLanding
	default:
		return Allow
	}
}

// Location returns the redirect target of d, or "" for non-redirects.
func (d Decision) Location() string {
	switch d {
	case RedirectSignIn:
		return SignInPath
	case RedirectLanding:
		return LandingPath
	default:
		return ""
	}
}
