package fetch

import (
	"context"
	"log/slog"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"github.com/abdul-hamid-achik/easyfetch/packages/httperr"
	"github.com/abdul-hamid-achik/easyfetch/packages/output"
	"github.com/google/uuid"
)

type Fetcher struct {
	client   *http.Client
	logger   *slog.Logger
	reporter output.Reporter
}

type Option func(*Fetcher)

func New(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = http.NewClient()
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithReporter prints every outcome, e.g. to the console.
func WithReporter(r output.Reporter) Option {
	return func(f *Fetcher) {
		f.reporter = r
	}
}

// Fetch serializes the body, runs the request, logs the outcome and returns it.
func (f *Fetcher) Fetch(ctx context.Context, cfg Config) (*http.Success, error) {
	logger := f.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("url", cfg.URL),
	)

	req, err := cfg.RequestConfig()
	if err != nil {
		failure := httperr.Validation(err.Error()).WithCause(err)
		req = http.RequestConfig{URL: cfg.URL, Method: cfg.Method}
		f.finish(logger, req, http.Outcome{Failure: failure})
		return nil, failure
	}

	req = req.WithDefaults()
	logger = logger.With(slog.String("method", req.Method))
	logger.DebugContext(ctx, "sending request", slog.String("protocol", http.Protocol(req.URL)))

	resp, err := f.client.Do(ctx, req)
	f.finish(logger, req, http.NewOutcome(resp, err))
	return resp, err
}

// Go runs the request in the background and only logs the result. The
// returned channel is closed once the request has finished.
func (f *Fetcher) Go(cfg Config) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Fetch(context.Background(), cfg)
	}()
	return done
}

func (f *Fetcher) finish(logger *slog.Logger, req http.RequestConfig, outcome http.Outcome) {
	if outcome.OK() {
		logger.Info("request completed",
			slog.Int("status", outcome.Success.Status),
			slog.String("time", outcome.Success.Time),
		)
	} else {
		logger.Warn("request failed",
			slog.Int("statusCode", outcome.Failure.StatusCode),
			slog.String("error", outcome.Failure.Message),
		)
	}

	if f.reporter != nil {
		f.reporter.Report(req, outcome)
	}
}

// Fetch runs cfg on a fresh Fetcher with default settings.
func Fetch(ctx context.Context, cfg Config) (*http.Success, error) {
	return New().Fetch(ctx, cfg)
}

// Go is the fire-and-forget form of Fetch on a fresh Fetcher.
func Go(cfg Config) <-chan struct{} {
	return New().Go(cfg)
}
