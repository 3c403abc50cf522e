package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/httpx"
	"github.com/louisbranch/jobboard/internal/platform/logging"
	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/platform/timeouts"
	"github.com/louisbranch/jobboard/internal/services/jobboard/service"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Options configures a Handler.
type Options struct {
	Service *service.Service
	Tokens  TokenVerifier
	Logger  *zap.Logger
	// AuthRatePerMinute limits register and login attempts per client IP.
	// Zero disables limiting.
	AuthRatePerMinute int
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	// RequestTimeout bounds each request context. Zero uses timeouts.Request.
	RequestTimeout time.Duration
	// Health reports backing store health for /healthz.
	Health func(context.Context) error
}

// Handler serves the job board REST API.
type Handler struct {
	service       *service.Service
	tokens        TokenVerifier
	logger        *zap.Logger
	authLimiter   *httpx.KeyedLimiter
	secureCookies bool
	timeout       time.Duration
	health        func(context.Context) error
}

// New validates opts and builds a Handler.
func New(opts Options) (*Handler, error) {
	if opts.Service == nil {
		return nil, errors.New("service is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token verifier is required")
	}
	h := &Handler{
		service:       opts.Service,
		tokens:        opts.Tokens,
		logger:        logging.Component(opts.Logger, "rest"),
		secureCookies: opts.SecureCookies,
		timeout:       opts.RequestTimeout,
		health:        opts.Health,
	}
	if h.timeout <= 0 {
		h.timeout = timeouts.Request
	}
	if opts.AuthRatePerMinute > 0 {
		h.authLimiter = httpx.NewKeyedLimiter(opts.AuthRatePerMinute, 0)
	}
	return h, nil
}

// Routes returns the traced handler for every API route.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.registerRoutes(mux)
	handler := httpx.Chain(mux,
		httpx.RequestID(),
		httpx.Locale(),
		httpx.AccessLog(h.logger),
		httpx.RecoverPanic(h.logger),
		httpx.Timeout(h.timeout),
	)
	return otelhttp.NewHandler(handler, "jobboard.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			if r.Pattern != "" {
				return r.Pattern
			}
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (h *Handler) limited(fn http.HandlerFunc) http.Handler {
	return httpx.Chain(fn, httpx.RateLimit(h.authLimiter))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			logging.FromContext(r.Context(), h.logger).Warn("health check failed", zap.Error(err))
			writeError(w, r, apperrors.Internal("health", err))
			return
		}
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

type dataResponse struct {
	Data any `json:"data"`
}

type listResponse struct {
	Data       any             `json:"data"`
	Pagination pagination.Page `json:"pagination"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	_ = httpx.WriteJSON(w, status, dataResponse{Data: data})
}

func writeList(w http.ResponseWriter, data any, page pagination.Page) {
	_ = httpx.WriteJSON(w, http.StatusOK, listResponse{Data: data, Pagination: page})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(w, r, err)
}

// pageRequest reads the page and limit query parameters. Missing values
// fall back to the defaults.
func pageRequest(r *http.Request) (pagination.Request, error) {
	query := r.URL.Query()
	page, err := intParam(query.Get("page"), "page")
	if err != nil {
		return pagination.Request{}, err
	}
	if page > pagination.MaxPage {
		reason := "page must be at most " + strconv.Itoa(pagination.MaxPage)
		return pagination.Request{}, apperrors.WithMetadata(apperrors.CodeInvalidRequest, reason, map[string]string{"Reason": reason})
	}
	limit, err := intParam(query.Get("limit"), "limit")
	if err != nil {
		return pagination.Request{}, err
	}
	return pagination.NewRequest(page, limit, pagination.DefaultPageSize), nil
}

func intParam(value, name string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		reason := name + " must be a non-negative integer"
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidRequest, reason, map[string]string{"Reason": reason})
	}
	return n, nil
}

func pathID(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("id"))
}
