// Package imageproxy relays product and brand images from allow-listed hosts
// so the browser loads them same-origin with a long cache lifetime.
package imageproxy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"storefront/internal/platform/metrics"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

const (
	// Path is where the proxy is mounted.
	Path = "/image-proxy"

	cacheControl       = "public, max-age=86400, s-maxage=86400"
	defaultContentType = "image/png"
	// Some image hosts refuse requests without a browser user agent.
	fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxImageBytes  = 10 << 20
	metricsOp      = "image_proxy.fetch"
	maxRedirects   = 5
)

var (
	errRedirectNotAllowed = errors.New("redirect to a host outside the allow-list")
	errTooManyRedirects   = errors.New("too many redirects")
)

type Handler struct {
	allowed []string
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Handler)

// WithHTTPClient replaces the client used to fetch images.
func WithHTTPClient(c *http.Client) Option {
	return func(h *Handler) { h.client = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// New builds a proxy that only fetches from allowedHosts (exact, case
// insensitive host names).
func New(allowedHosts []string, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
	for _, host := range allowedHosts {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			h.allowed = append(h.allowed, host)
		}
	}
	for _, opt := range opts {
		opt(h)
	}
	// Every redirect hop must stay on the allow-list.
	client := *h.client
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return errTooManyRedirects
		}
		if !h.Allowed(req.URL.String()) {
			return errRedirectNotAllowed
		}
		return nil
	}
	h.client = &client
	return h
}

// Register mounts GET /image-proxy with permissive CORS so images can be
// drawn to canvases from any origin.
func (h *Handler) Register(r chi.Router) {
	r.With(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	})).Get(Path, h.ServeHTTP)
}

// Allowed reports whether raw points at an allow-listed host over http(s).
func (h *Handler) Allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return slices.Contains(h.allowed, strings.ToLower(u.Hostname()))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query().Get("url")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "URL parameter is required"))
		return
	}
	if !h.Allowed(raw) {
		httputil.WriteJSON(w, http.StatusForbidden, httputil.ErrorResponse{
			Error:       "forbidden",
			Description: "Domain not allowed",
		})
		return
	}

	start := time.Now()
	resp, err := h.fetch(ctx, raw)
	if errors.Is(err, errRedirectNotAllowed) {
		h.metrics.ObserveUpstream(metricsOp, "redirect_blocked", time.Since(start))
		h.logger.WarnContext(ctx, "image redirect left the allow-list",
			"request_id", requestcontext.RequestID(ctx),
			"url", raw,
		)
		httputil.WriteJSON(w, http.StatusForbidden, httputil.ErrorResponse{
			Error:       "forbidden",
			Description: "Domain not allowed",
		})
		return
	}
	if err != nil {
		h.metrics.ObserveUpstream(metricsOp, "network_failure", time.Since(start))
		h.logger.WarnContext(ctx, "image fetch failed",
			"request_id", requestcontext.RequestID(ctx),
			"url", raw,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadGateway, "Failed to fetch image"))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.metrics.ObserveUpstream(metricsOp, "status_"+strconv.Itoa(resp.StatusCode), time.Since(start))
		httputil.WriteJSON(w, resp.StatusCode, httputil.ErrorResponse{
			Error:       "fetch_failed",
			Description: "Failed to fetch image",
		})
		return
	}
	h.metrics.ObserveUpstream(metricsOp, "ok", time.Since(start))

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	if resp.ContentLength > 0 && resp.ContentLength <= maxImageBytes {
		w.Header().Set("Content-Length", strconv.FormatInt(resp.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		h.logger.DebugContext(ctx, "image copy interrupted",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (h *Handler) fetch(ctx context.Context, raw string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	return h.client.Do(req)
}
