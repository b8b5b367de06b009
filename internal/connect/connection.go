package connect

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/movepal/api/internal/config"
	"github.com/movepal/api/internal/upstream"
)

var Upstream *upstream.Client

// InitUpstream builds the shared booking API client. The cookie jar carries
// the upstream session cookie alongside bearer tokens; CSRF tokens for
// state-changing session calls are fetched through the client itself.
func InitUpstream(cfg *config.Config, logger *slog.Logger) (*upstream.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %v", err)
	}

	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
		Jar:     jar,
	}
	client := upstream.New(cfg.UpstreamBaseURL, httpClient, logger)

	// Reachability probe; the gateway still starts if the API is down.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.FetchCSRF(ctx); err != nil {
		logger.Warn("booking API not reachable at startup", "url", cfg.UpstreamBaseURL, "error", err)
	}

	Upstream = client
	return client, nil
}

func Disconnect() {
	Upstream = nil
}
