package corpus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const twoSurahPayload = `{
  "code": 200,
  "status": "OK",
  "data": {
    "surahs": [
      {"number": 1, "name": "Al-Fatiha", "englishName": "The Opening", "ayahs": [
        {"number": 1, "text": "first", "numberInSurah": 1, "juz": 1},
        {"number": 2, "text": "second", "numberInSurah": 2, "juz": 1}
      ]},
      {"number": 2, "name": "Al-Baqara", "englishName": "The Cow", "ayahs": [
        {"number": 3, "text": " third ", "numberInSurah": 1, "juz": 1},
        {"number": 4, "text": "fourth", "numberInSurah": 2, "juz": 2}
      ]}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewFromEnv(Config{Endpoint: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	return client
}

func TestClientLoadFlattensInNestedOrder(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoSurahPayload))
	})

	verses, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected exactly one request, got %d", got)
	}
	if len(verses) != 4 {
		t.Fatalf("expected 4 verses, got %d", len(verses))
	}
	for i, verse := range verses {
		if verse.ID != i+1 {
			t.Fatalf("verse %d has id %d", i, verse.ID)
		}
	}
	third := verses[2]
	want := Verse{
		ID:                 3,
		Text:               "third",
		ChapterNumber:      2,
		ChapterName:        "Al-Baqara",
		ChapterEnglishName: "The Cow",
		NumberInChapter:    1,
		SectionNumber:      1,
	}
	if third != want {
		t.Fatalf("unexpected third verse:\n got %#v\nwant %#v", third, want)
	}
	if verses[3].SectionNumber != 2 {
		t.Fatalf("juz not carried over, got %d", verses[3].SectionNumber)
	}
}

func TestClientLoadFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		kind   FetchKind
	}{
		{"http error", http.StatusBadGateway, "upstream down", FetchStatus},
		{"api error code", http.StatusOK, `{"code":404,"status":"Not Found"}`, FetchStatus},
		{"invalid json", http.StatusOK, `{"code":200,`, FetchPayload},
		{"missing data", http.StatusOK, `{"code":200,"status":"OK"}`, FetchPayload},
		{"no surahs", http.StatusOK, `{"code":200,"status":"OK","data":{"surahs":[]}}`, FetchPayload},
		{"out of order ids", http.StatusOK, `{"code":200,"status":"OK","data":{"surahs":[{"number":1,"name":"x","ayahs":[{"number":2,"text":"a","juz":1},{"number":1,"text":"b","juz":1}]}]}}`, FetchPayload},
		{"duplicate ids", http.StatusOK, `{"code":200,"status":"OK","data":{"surahs":[{"number":1,"name":"x","ayahs":[{"number":1,"text":"a","juz":1},{"number":1,"text":"b","juz":1}]}]}}`, FetchPayload},
		{"missing juz", http.StatusOK, `{"code":200,"status":"OK","data":{"surahs":[{"number":1,"name":"x","ayahs":[{"number":1,"text":"a"}]}]}}`, FetchPayload},
		{"empty surahs", http.StatusOK, `{"code":200,"status":"OK","data":{"surahs":[{"number":1,"name":"x","ayahs":[]}]}}`, FetchPayload},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			verses, err := client.Load(context.Background())
			if err == nil {
				t.Fatalf("expected error, got %d verses", len(verses))
			}
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %T", err)
			}
			if fetchErr.Kind != tt.kind {
				t.Fatalf("kind mismatch: got %s want %s (%v)", fetchErr.Kind, tt.kind, err)
			}
			if strings.TrimSpace(fetchErr.Error()) == "" {
				t.Fatal("error message should be human readable")
			}
		})
	}
}

func TestClientLoadHTTPErrorCarriesStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	_, err := client.Load(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status mismatch: %d", fetchErr.StatusCode)
	}
	if !strings.Contains(fetchErr.Error(), "maintenance") {
		t.Fatalf("body excerpt missing from %q", fetchErr.Error())
	}
}

func TestClientLoadNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewFromEnv(Config{Endpoint: url})
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	_, err = client.Load(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Kind != FetchNetwork {
		t.Fatalf("expected network FetchError, got %v", err)
	}
}

func TestClientLoadHonoursContext(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(twoSurahPayload))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestNewFromEnvResolution(t *testing.T) {
	t.Setenv(endpointEnvVar, "")
	t.Setenv(editionEnvVar, "")

	client, err := NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if client.Endpoint() != "http://api.alquran.cloud/v1/quran/quran-uthmani" {
		t.Fatalf("unexpected default endpoint %q", client.Endpoint())
	}

	t.Setenv(editionEnvVar, "en.asad")
	client, err = NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("edition env: %v", err)
	}
	if client.Edition() != "en.asad" || !strings.HasSuffix(client.Endpoint(), "/en.asad") {
		t.Fatalf("edition env ignored: %q %q", client.Edition(), client.Endpoint())
	}

	t.Setenv(endpointEnvVar, "https://mirror.example/quran")
	client, err = NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("endpoint env: %v", err)
	}
	if client.Endpoint() != "https://mirror.example/quran" {
		t.Fatalf("endpoint env ignored: %q", client.Endpoint())
	}

	client, err = NewFromEnv(Config{Endpoint: "http://flag.example/q", Edition: "quran-simple"})
	if err != nil {
		t.Fatalf("flags: %v", err)
	}
	if client.Endpoint() != "http://flag.example/q" || client.Edition() != "quran-simple" {
		t.Fatalf("flags should win: %q %q", client.Endpoint(), client.Edition())
	}

	if _, err := NewFromEnv(Config{Endpoint: "ftp://nope"}); err == nil {
		t.Fatal("expected non-http endpoint to be rejected")
	}
}
