package corpus

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultEdition     = "quran-uthmani"
	defaultAPIBase     = "http://api.alquran.cloud/v1/quran"
	defaultHTTPTimeout = 30 * time.Second

	endpointEnvVar = "MUSHAF_API_URL"
	editionEnvVar  = "MUSHAF_EDITION"
)

// Verse is a single ayah in corpus order. ID is the absolute verse number and
// doubles as the ordering key for pagination.
type Verse struct {
	ID                 int
	Text               string
	ChapterNumber      int
	ChapterName        string
	ChapterEnglishName string
	NumberInChapter    int
	SectionNumber      int
}

// Loader fetches the whole corpus in one call. Implementations keep no state
// between calls and never cache or retry.
type Loader interface {
	Load(ctx context.Context) ([]Verse, error)
}

// Config describes how to build an HTTP loader.
type Config struct {
	Endpoint   string
	Edition    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewFromEnv resolves flags first, then environment variables, then defaults.
func NewFromEnv(cfg Config) (*Client, error) {
	edition := strings.TrimSpace(cfg.Edition)
	if edition == "" {
		if env := os.Getenv(editionEnvVar); env != "" {
			edition = strings.TrimSpace(env)
		} else {
			edition = defaultEdition
		}
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		if env := os.Getenv(endpointEnvVar); env != "" {
			endpoint = strings.TrimSpace(env)
		} else {
			endpoint = fmt.Sprintf("%s/%s", defaultAPIBase, edition)
		}
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("corpus endpoint must be an http(s) url, got %q", endpoint)
	}
	return &Client{
		endpoint: endpoint,
		edition:  edition,
		client:   pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
