// Package provider fetches prior-run console logs from the CI provider's
// REST API. Fetching is best effort: every failure degrades to less (or no)
// historical text and is logged, never surfaced to the caller. The core
// pipeline proceeds on default weights when nothing could be fetched.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/logging"
)

// build is the subset of the CI provider's build listing we care about.
type build struct {
	BuildNum int    `json:"build_num"`
	Status   string `json:"status"`
}

// artifact is one entry in a build's artifact listing.
type artifact struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// CircleCI lists and downloads artifacts of recent builds on a branch.
type CircleCI struct {
	cfg    *config.Config
	client *http.Client
	logger logging.Logger
}

// NewCircleCI creates a provider using the config's API settings.
func NewCircleCI(cfg *config.Config, logger logging.Logger) *CircleCI {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CircleCI{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// FetchHistory downloads the console-log artifacts of recent builds whose
// URL matches the configured filter pattern and concatenates their bodies.
// It returns an empty string on total failure and never returns an error.
func (c *CircleCI) FetchHistory(ctx context.Context) string {
	builds, err := c.listBuilds(ctx)
	if err != nil {
		c.logger.Warn("could not list recent builds, proceeding with default weights", "error", err)
		return ""
	}

	var urls []string
	for _, b := range builds {
		artifacts, err := c.listArtifacts(ctx, b.BuildNum)
		if err != nil {
			c.logger.Warn("could not list artifacts", "build", b.BuildNum, "error", err)
			continue
		}
		for _, a := range artifacts {
			if c.cfg.ArtifactPattern == "" || discovery.MatchName(a.Path, c.cfg.ArtifactPattern) {
				urls = append(urls, a.URL)
			}
		}
	}
	if len(urls) == 0 {
		c.logger.Info("no matching artifacts found", "builds", len(builds))
		return ""
	}

	return strings.Join(c.downloadAll(ctx, urls), "\n")
}

// downloadAll fetches artifact bodies with a bounded worker pool and
// returns the successful ones in request order.
func (c *CircleCI) downloadAll(ctx context.Context, urls []string) []string {
	queue := make(chan int, len(urls))
	for i := range urls {
		queue <- i
	}
	close(queue)

	bodies := make([]string, len(urls))
	workerCount := c.cfg.FetchConcurrency
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				body, err := c.download(ctx, urls[i])
				if err != nil {
					c.logger.Warn("artifact download failed", "url", urls[i], "error", err)
					continue
				}
				bodies[i] = body
			}
		}()
	}
	wg.Wait()

	var ok []string
	for _, body := range bodies {
		if body != "" {
			ok = append(ok, body)
		}
	}
	return ok
}

func (c *CircleCI) listBuilds(ctx context.Context) ([]build, error) {
	endpoint := fmt.Sprintf("%s/project/github/%s/%s/tree/%s",
		c.cfg.APIBaseURL, c.cfg.User, c.cfg.Project, url.PathEscape(c.cfg.Branch))
	query := url.Values{
		"limit":  {fmt.Sprintf("%d", c.cfg.BuildLimit)},
		"filter": {"completed"},
	}

	var builds []build
	if err := c.getJSON(ctx, endpoint, query, &builds); err != nil {
		return nil, err
	}
	return builds, nil
}

func (c *CircleCI) listArtifacts(ctx context.Context, buildNum int) ([]artifact, error) {
	endpoint := fmt.Sprintf("%s/project/github/%s/%s/%d/artifacts",
		c.cfg.APIBaseURL, c.cfg.User, c.cfg.Project, buildNum)

	var artifacts []artifact
	if err := c.getJSON(ctx, endpoint, nil, &artifacts); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (c *CircleCI) download(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *CircleCI) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	body, err := c.get(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *CircleCI) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("bad endpoint: %w", err)
	}
	if query == nil {
		query = u.Query()
	}
	if c.cfg.Token != "" {
		query.Set("circle-token", c.cfg.Token)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
