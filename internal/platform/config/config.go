package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "storefront/pkg/platform/strings"
)

// DefaultUpstreamBaseURL is the public e-commerce API the storefront fronts.
const DefaultUpstreamBaseURL = "https://ecommerce.routemisr.com/api/v1"

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	Upstream    UpstreamConfig
	Session     SessionConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Audit       AuditConfig
	ImageProxy  ImageProxyConfig
}

// UpstreamConfig configures the remote data client.
type UpstreamConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RetryAttempts     int
	RetryBackoff      time.Duration
	BreakerThreshold  int
	BreakerCooldown   time.Duration
	CheckoutReturnURL string
}

// SessionConfig configures the session cookie and credential verification.
type SessionConfig struct {
	SigningKey     string
	CookieName     string
	CookieSecure   bool
	TTL            time.Duration
	VerifyInterval time.Duration
}

// RedisConfig is empty-URL disabled; stores fall back to memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CacheConfig bounds how long derived reads stay fresh.
// CleanupInterval is how often in-memory stores drop expired records.
type CacheConfig struct {
	CatalogTTL      time.Duration
	CartCountTTL    time.Duration
	CleanupInterval time.Duration
}

// AuditConfig selects the audit sink. No brokers means in-memory.
type AuditConfig struct {
	KafkaBrokers []string
	KafkaTopic   string
	BufferSize   int
}

// ImageProxyConfig restricts which hosts /image-proxy fetches from.
type ImageProxyConfig struct {
	AllowedHosts []string
}

const devSigningKey = "dev-session-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        envString("STOREFRONT_ADDR", ":8080"),
		Environment: envString("STOREFRONT_ENV", "development"),
		LogLevel:    envString("LOG_LEVEL", "info"),
		Upstream: UpstreamConfig{
			BaseURL:           strings.TrimRight(envString("UPSTREAM_BASE_URL", DefaultUpstreamBaseURL), "/"),
			Timeout:           envDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			RetryAttempts:     envInt("UPSTREAM_RETRY_ATTEMPTS", 2),
			RetryBackoff:      envDuration("UPSTREAM_RETRY_BACKOFF", 200*time.Millisecond),
			BreakerThreshold:  envInt("UPSTREAM_BREAKER_THRESHOLD", 5),
			BreakerCooldown:   envDuration("UPSTREAM_BREAKER_COOLDOWN", 5*time.Second),
			CheckoutReturnURL: envString("CHECKOUT_RETURN_URL", "http://localhost:8080"),
		},
		Session: SessionConfig{
			// Use a default for development; Validate rejects it in production.
			SigningKey:     envString("SESSION_SIGNING_KEY", devSigningKey),
			CookieName:     envString("SESSION_COOKIE_NAME", "session"),
			CookieSecure:   os.Getenv("SESSION_COOKIE_SECURE") == "true",
			TTL:            envDuration("SESSION_TTL", 7*24*time.Hour),
			VerifyInterval: envDuration("SESSION_VERIFY_INTERVAL", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Cache: CacheConfig{
			CatalogTTL:      envDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			CartCountTTL:    envDuration("CART_COUNT_TTL", time.Minute),
			CleanupInterval: envDuration("CACHE_CLEANUP_INTERVAL", time.Minute),
		},
		Audit: AuditConfig{
			KafkaBrokers: platformstrings.SplitList(os.Getenv("AUDIT_KAFKA_BROKERS")),
			KafkaTopic:   envString("AUDIT_KAFKA_TOPIC", "storefront.audit"),
			BufferSize:   envInt("AUDIT_BUFFER_SIZE", 1024),
		},
		ImageProxy: ImageProxyConfig{
			AllowedHosts: platformstrings.SplitListLower(envString("IMAGE_PROXY_ALLOWED_HOSTS", "ecommerce.routemisr.com")),
		},
	}
}

// IsProduction reports whether the server runs with production safeguards.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// Validate rejects configurations that are unsafe or unusable.
func (s Server) Validate() error {
	var errs []error
	if s.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("UPSTREAM_BASE_URL is required"))
	}
	if s.Upstream.RetryAttempts < 0 {
		errs = append(errs, errors.New("UPSTREAM_RETRY_ATTEMPTS must not be negative"))
	}
	if s.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if s.Cache.CleanupInterval <= 0 {
		errs = append(errs, errors.New("CACHE_CLEANUP_INTERVAL must be positive"))
	}
	if s.IsProduction() {
		if s.Session.SigningKey == "" || s.Session.SigningKey == devSigningKey {
			errs = append(errs, errors.New("SESSION_SIGNING_KEY must be set in production"))
		}
		if !s.Session.CookieSecure {
			errs = append(errs, errors.New("SESSION_COOKIE_SECURE must be true in production"))
		}
	}
	return errors.Join(errs...)
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
