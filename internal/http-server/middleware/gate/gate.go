// Package gate decides per request whether a path is reachable with or without a session.
package gate

import (
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"zylumine/lib/api/cont"
	"zylumine/lib/api/response"
	"zylumine/lib/sl"
)

type Decision int

const (
	Allow Decision = iota
	RedirectHome
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case RedirectHome:
		return "redirect_home"
	case RedirectLogin:
		return "redirect_login"
	default:
		return "allow"
	}
}

const (
	homePath  = "/"
	loginPath = "/login"
)

// paths that are never checked
var passPrefixes = []string{
	"/api/auth",
	"/api/verify-code",
	"/api/send-feedback",
	"/api/letter",
	"/_next/",
}

var passExtensions = map[string]bool{
	".css": true, ".js": true, ".map": true, ".txt": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".ico": true, ".webp": true,
	".woff": true, ".woff2": true, ".ttf": true,
}

var authOnly = map[string]bool{
	loginPath: true,
}

var public = map[string]bool{
	loginPath: true,
	homePath:  true,
	"/guest":  true,
}

// Decide maps a path and session presence to a decision. It looks at nothing else.
func Decide(p string, hasSession bool) Decision {
	if passThrough(p) {
		return Allow
	}
	if authOnly[p] && hasSession {
		return RedirectHome
	}
	if public[p] {
		return Allow
	}
	if !hasSession {
		return RedirectLogin
	}
	return Allow
}

func passThrough(p string) bool {
	for _, prefix := range passPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return passExtensions[strings.ToLower(path.Ext(p))]
}

// LoginURL is the login page carrying p as the callback, escaped the way
// browsers escape a URI component.
func LoginURL(p string) string {
	return loginPath + "?callbackUrl=" + encodeURIComponent(p)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// New applies Decide to every request. API paths get a 401 body instead of a
// redirect since their callers are scripts, not browsers.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.gate")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			decision := Decide(p, cont.GetIdentity(r.Context()) != nil)
			if decision == Allow {
				next.ServeHTTP(w, r)
				return
			}

			log.With(
				mod,
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", p),
				slog.String("decision", decision.String()),
			).Debug("request gated")

			switch {
			case decision == RedirectHome:
				http.Redirect(w, r, homePath, http.StatusFound)
			case strings.HasPrefix(p, "/api/"):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
			default:
				http.Redirect(w, r, LoginURL(p), http.StatusFound)
			}
		}
		return http.HandlerFunc(fn)
	}
}
