package champion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/config"
)

// DDragonClient resolves the current Data Dragon patch version, used to
// keep champion reference data aligned with the live game. A pinned
// version (config or DDRAGON_VERSION env var) takes precedence for
// reproducible deployments; lookup failures fall back to a safe default.
type DDragonClient struct {
	cfg     config.ReferenceConfig
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger

	mu     sync.Mutex
	cached string
}

// NewDDragonClient creates a version client with retrying HTTP and a
// client-side rate limit.
func NewDDragonClient(cfg config.ReferenceConfig, logger *logrus.Logger) *DDragonClient {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil

	return &DDragonClient{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger,
	}
}

// Version returns the Data Dragon patch version string.
func (c *DDragonClient) Version(ctx context.Context) string {
	if pinned := c.pinnedVersion(); pinned != "" {
		return pinned
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != "" {
		return c.cached
	}

	version, err := c.fetchLatest(ctx)
	if err != nil {
		c.logger.WithError(err).Warnf("Failed to fetch DDragon version; using fallback=%s", c.cfg.FallbackVersion)
		return c.cfg.FallbackVersion
	}
	c.cached = version
	return version
}

func (c *DDragonClient) pinnedVersion() string {
	pinned := os.Getenv("DDRAGON_VERSION")
	if pinned == "" {
		pinned = c.cfg.PinnedVersion
	}
	pinned = strings.TrimSpace(pinned)
	if pinned == "" || strings.EqualFold(pinned, "latest") {
		return ""
	}
	return pinned
}

func (c *DDragonClient) fetchLatest(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	url := strings.TrimRight(c.cfg.DDragonURL, "/") + "/api/versions.json"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ddragon versions: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", fmt.Errorf("ddragon versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("ddragon versions: empty response")
	}
	return versions[0], nil
}
