package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/services"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const (
	identityContextKey contextKey = "identity"
	roleContextKey     contextKey = "role"

	deviceHeader = "X-Device-ID"
)

func identityFromContext(ctx context.Context) services.Identity {
	if v := ctx.Value(identityContextKey); v != nil {
		if id, ok := v.(services.Identity); ok {
			return id
		}
	}
	return services.Identity{}
}

func roleFromContext(ctx context.Context) string {
	if v := ctx.Value(roleContextKey); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// identityMiddleware resolves who is calling. A valid bearer token makes the
// request a signed-in player; otherwise play is anonymous, keyed by the
// device ID header. A missing device ID gets a generated one, echoed back so
// the client can keep it.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var id services.Identity
		var role string

		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			playerID, tokenRole, err := s.parseToken(token)
			if err != nil {
				log.Warn("rejected bearer token: %v", err)
				handleError(w, r, errors.NewUnauthorizedError("invalid token"))
				return
			}
			id.PlayerID = playerID
			role = tokenRole
		}

		id.DeviceID = r.Header.Get(deviceHeader)
		if id.DeviceID == "" {
			id.DeviceID = uuid.NewString()
			log.Debug("assigned device id: %s", id.DeviceID)
		}
		w.Header().Set(deviceHeader, id.DeviceID)

		ctx := context.WithValue(r.Context(), identityContextKey, id)
		ctx = context.WithValue(ctx, roleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) parseToken(tokenString string) (playerID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.Config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	playerID, _ = claims["id"].(string)
	role, _ = claims["role"].(string)
	if playerID == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	return playerID, role, nil
}

// requireAdmin guards puzzle authoring routes.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if roleFromContext(r.Context()) != "admin" {
			handleError(w, r, errors.NewUnauthorizedError("admin required"))
			return
		}
		next(w, r)
	}
}

// requirePlayer guards routes that need a signed-in player.
func requirePlayer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identityFromContext(r.Context()).PlayerID == "" {
			handleError(w, r, errors.NewUnauthorizedError("sign in required"))
			return
		}
		next(w, r)
	}
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		ctx := logger.NewContext(r.Context(), log)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": duration.Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
