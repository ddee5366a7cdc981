package middleware

import (
	"context"
	"net/http"
	"strings"

	"petcare/internal/platform/logger"
	"petcare/internal/ports/auth"
)

const (
	// Solo se leen en modo dev (sin verifier).
	DebugUserHeader  = "X-Debug-User-ID"
	DebugEmailHeader = "X-Debug-User-Email"
)

type ctxKey struct{}

// AuthContext deja los claims del caller en el contexto.
//
// Con verifier, los saca del token Bearer (Identity Toolkit). Sin verifier
// (modo dev) los toma de X-Debug-User-ID / X-Debug-User-Email. Un token
// inválido o ausente no corta el request: cada handler decide si exige auth.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims := auth.Claims{UserID: uid, Email: strings.TrimSpace(r.Header.Get(DebugEmailHeader))}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug("bearer token rejected", map[string]any{"path": r.URL.Path, "err": err})
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims guarda claims en ctx. Lo usan AuthContext y los tests de handlers.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
