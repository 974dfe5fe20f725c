package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ndiaye-labs/gatepass/config"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
)

const (
	RoleAdmin      = "admin"
	RoleVendor     = "vendor"
	RoleController = "controller"

	requestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id, echoes it in the response
// header and threads a request-scoped logger into the context.
func RequestID(l logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if sugared, ok := l.(logger.Sugared); ok {
				ctx = logger.WithContext(ctx, sugared.Sugar().With("request_id", reqID))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthMiddleware validates bearer tokens minted by the external auth
// service. Tokens are HS256 with a "role" claim; this layer only checks
// them, it never issues them.
type AuthMiddleware struct {
	cfg config.JWTConfig
	l   logger.Logger
}

func NewAuthMiddleware(cfg config.JWTConfig, l logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		cfg: cfg,
		l:   l,
	}
}

func (m *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := m.roleFromRequest(r)
			if err != nil {
				m.l.Warnf(r.Context(), "delivery.http.AuthMiddleware: %v", err)
				respondStatus(w, http.StatusUnauthorized, "Missing or invalid token")
				return
			}
			if _, ok := allowed[role]; !ok {
				respondStatus(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) roleFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		return "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	role, _ := claims["role"].(string)
	return role, nil
}

func respondStatus(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": message,
		"code":  statusCode,
	})
}
