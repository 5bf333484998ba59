package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"shareit/internal/config"
	"shareit/internal/metrics"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const (
	apiKeyHeaderDefault = "x-api-key"
	permRead            = "read"
	permWrite           = "write"
	permExport          = "export"
	clientKeyUnknown    = "unknown"
)

var (
	errMissingAPIKey    = errors.New("missing api key header")
	errInvalidAPIKey    = errors.New("invalid api key")
	errPermissionDenied = errors.New("permission denied")
	errRateLimited      = errors.New("rate limit exceeded")
)

// keyring resolves API clients and checks what they may do.
type keyring struct {
	header  string
	enabled bool
	clients map[string]config.APIClientKey
}

func newKeyring(cfg config.APIAuthConfig) *keyring {
	m := make(map[string]config.APIClientKey, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		m[k.Key] = k
	}
	header := strings.ToLower(strings.TrimSpace(cfg.HeaderAPIKey))
	if header == "" {
		header = apiKeyHeaderDefault
	}
	return &keyring{header: header, enabled: cfg.Enabled, clients: m}
}

func (k *keyring) authorize(apiKey, required string) error {
	if apiKey == "" {
		return errMissingAPIKey
	}
	client, ok := k.clients[apiKey]
	if !ok {
		return errInvalidAPIKey
	}

	// an empty permission list is allow-all
	if required == "" || len(client.Permissions) == 0 {
		return nil
	}
	for _, p := range client.Permissions {
		if strings.TrimSpace(p) == required {
			return nil
		}
	}
	return errPermissionDenied
}

// AuthInterceptor checks API keys and per-client rate limits on gRPC calls.
type AuthInterceptor struct {
	keys    *keyring
	limiter *keyLimiter
}

func NewAuthInterceptor(cfg *config.APIConfig) *AuthInterceptor {
	return &AuthInterceptor{
		keys:    newKeyring(cfg.Auth),
		limiter: newKeyLimiter(cfg.RateLimit),
	}
}

func (a *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if a.keys.enabled {
			md, ok := metadata.FromIncomingContext(ctx)
			if !ok {
				return nil, status.Error(codes.Unauthenticated, "missing metadata")
			}
			err := a.keys.authorize(first(md.Get(a.keys.header)), requiredPermission(info.FullMethod))
			if errors.Is(err, errPermissionDenied) {
				return nil, status.Error(codes.PermissionDenied, err.Error())
			}
			if err != nil {
				return nil, status.Error(codes.Unauthenticated, err.Error())
			}
		}

		if !a.limiter.allow(a.clientKey(ctx)) {
			metrics.IncRateLimited("grpc")
			return nil, status.Error(codes.ResourceExhausted, errRateLimited.Error())
		}

		return handler(ctx, req)
	}
}

func requiredPermission(fullMethod string) string {
	switch fullMethod {
	case "/grpc.health.v1.Health/Check", "/grpc.health.v1.Health/List":
		return permRead
	default:
		return ""
	}
}

func (a *AuthInterceptor) clientKey(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if apiKey := first(md.Get(a.keys.header)); apiKey != "" {
		return apiKey
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return clientKeyUnknown
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

// HTTPAuth is the HTTP counterpart of AuthInterceptor.
type HTTPAuth struct {
	keys    *keyring
	limiter *keyLimiter
}

func NewHTTPAuth(cfg config.APIConfig) *HTTPAuth {
	return &HTTPAuth{
		keys:    newKeyring(cfg.Auth),
		limiter: newKeyLimiter(cfg.RateLimit),
	}
}

func (a *HTTPAuth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.keys.enabled {
			err := a.keys.authorize(strings.TrimSpace(r.Header.Get(a.keys.header)), requiredPermissionHTTP(r))
			if err != nil {
				statusCode := http.StatusUnauthorized
				if errors.Is(err, errPermissionDenied) {
					statusCode = http.StatusForbidden
				}
				writeError(w, statusCode, err.Error())
				return
			}
		}

		if !a.limiter.allow(a.clientKey(r)) {
			metrics.IncRateLimited("api_key")
			writeError(w, http.StatusTooManyRequests, errRateLimited.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requiredPermissionHTTP(r *http.Request) string {
	if strings.HasSuffix(r.URL.Path, "/export") {
		return permExport
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return permRead
	default:
		return permWrite
	}
}

func (a *HTTPAuth) clientKey(r *http.Request) string {
	if apiKey := strings.TrimSpace(r.Header.Get(a.keys.header)); apiKey != "" {
		return apiKey
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return clientKeyUnknown
}
