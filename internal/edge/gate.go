package edge

import (
	"net/http"
	"strings"

	"github.com/craftline/shopfront/internal/domain"
	"github.com/craftline/shopfront/internal/infrastructure/security"
	"github.com/craftline/shopfront/internal/logger"
)

// Gate is the request-time interception layer in front of the page frontend.
// It classifies each path into one of three route classes and redirects
// browsing sessions before any page renders.
//
// The gate checks cookie PRESENCE and re-derives the admin flag from the
// plaintext email cookie against the allow-list. It does not verify the
// token's signature; that is the session guard's job on the API side. This
// layer is a UX redirect optimization, never an authorization boundary.
type Gate struct {
	admins domain.AdminList

	// Route classes, matched by path prefix.
	authPaths   []string // login/register pages
	adminPaths  []string // privileged area
	authedPaths []string // cart/favourites-class pages

	loginPath string
	adminHome string
	home      string
}

type GateConfig struct {
	Admins domain.AdminList

	AuthPaths   []string
	AdminPaths  []string
	AuthedPaths []string

	LoginPath string
	AdminHome string
	Home      string
}

func NewGate(cfg GateConfig) *Gate {
	g := &Gate{
		admins:      cfg.Admins,
		authPaths:   cfg.AuthPaths,
		adminPaths:  cfg.AdminPaths,
		authedPaths: cfg.AuthedPaths,
		loginPath:   cfg.LoginPath,
		adminHome:   cfg.AdminHome,
		home:        cfg.Home,
	}
	if len(g.authPaths) == 0 {
		g.authPaths = []string{"/login", "/register"}
	}
	if len(g.adminPaths) == 0 {
		g.adminPaths = []string{"/dashboard"}
	}
	if len(g.authedPaths) == 0 {
		g.authedPaths = []string{"/cart", "/favourites"}
	}
	if g.loginPath == "" {
		g.loginPath = "/login"
	}
	if g.adminHome == "" {
		g.adminHome = "/dashboard"
	}
	if g.home == "" {
		g.home = "/"
	}
	return g
}

// Middleware applies the gate's redirect matrix. Redirects are terminal: no
// further handler runs for that request.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		hasToken := g.hasSessionCookie(r)
		isAdmin := g.isAdminByEmailCookie(r)

		switch {
		case matchesPrefix(path, g.authPaths):
			// Authenticated users do not belong on login/register pages.
			switch {
			case hasToken && isAdmin:
				g.redirect(w, r, g.adminHome)
			case hasToken:
				g.redirect(w, r, g.home)
			default:
				// Anonymous users belong here; only bounce requests that
				// are not already on the login page, to avoid a loop.
				if path != g.loginPath {
					g.redirect(w, r, g.loginPath)
					return
				}
				next.ServeHTTP(w, r)
			}
			return

		case matchesPrefix(path, g.adminPaths):
			if !hasToken || !isAdmin {
				g.redirect(w, r, g.loginPath)
				return
			}

		case matchesPrefix(path, g.authedPaths):
			if !hasToken {
				g.redirect(w, r, g.loginPath)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gate) hasSessionCookie(r *http.Request) bool {
	tok, err := security.ReadSessionToken(r)
	return err == nil && tok != ""
}

// isAdminByEmailCookie re-derives the role from the plaintext email copy.
// Exact string membership, same rule as at mint time; the two sites can
// disagree only if the configured allow-list differs between processes.
func (g *Gate) isAdminByEmailCookie(r *http.Request) bool {
	email, err := security.ReadEmailCookie(r)
	if err != nil || email == "" {
		return false
	}
	return g.admins.IsAdmin(email)
}

func (g *Gate) redirect(w http.ResponseWriter, r *http.Request, to string) {
	logger.WithCtx(r.Context()).Debug().
		Str("from", r.URL.Path).
		Str("to", to).
		Msg("edge_redirect")
	http.Redirect(w, r, to, http.StatusTemporaryRedirect)
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
