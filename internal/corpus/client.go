package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client loads an alquran.cloud edition over HTTP.
type Client struct {
	endpoint string
	edition  string
	client   *http.Client
}

// Endpoint reports the url the client fetches.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Edition reports the configured edition identifier.
func (c *Client) Edition() string {
	return c.edition
}

// Load performs one GET against the endpoint and flattens the response.
func (c *Client) Load(ctx context.Context) ([]Verse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Kind:       FetchStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("scripture API error: %s", resp.Status),
			Err:        bodyExcerpt(body),
		}
	}

	payload, err := decodeResponse(resp.Body)
	if err != nil {
		return nil, err
	}
	return flatten(payload)
}

type apiResponse struct {
	Code   int      `json:"code"`
	Status string   `json:"status"`
	Data   *apiData `json:"data"`
}

type apiData struct {
	Surahs []apiSurah `json:"surahs"`
}

type apiSurah struct {
	Number      int       `json:"number"`
	Name        string    `json:"name"`
	EnglishName string    `json:"englishName"`
	Ayahs       []apiAyah `json:"ayahs"`
}

type apiAyah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
}

func decodeResponse(reader io.Reader) (*apiResponse, error) {
	var payload apiResponse
	if err := json.NewDecoder(reader).Decode(&payload); err != nil {
		return nil, payloadError("failed to decode response: %w", err)
	}
	if payload.Code != http.StatusOK {
		return nil, &FetchError{
			Kind:       FetchStatus,
			StatusCode: payload.Code,
			Message:    fmt.Sprintf("scripture API reported %d %s", payload.Code, strings.TrimSpace(payload.Status)),
		}
	}
	if payload.Data == nil || len(payload.Data.Surahs) == 0 {
		return nil, payloadError("response has no surahs")
	}
	return &payload, nil
}

// flatten walks surahs then ayahs, so the output keeps the nested order.
func flatten(payload *apiResponse) ([]Verse, error) {
	total := 0
	for _, surah := range payload.Data.Surahs {
		total += len(surah.Ayahs)
	}
	verses := make([]Verse, 0, total)
	lastID := 0
	for _, surah := range payload.Data.Surahs {
		if surah.Number <= 0 {
			return nil, payloadError("surah %q has invalid number %d", surah.EnglishName, surah.Number)
		}
		for _, ayah := range surah.Ayahs {
			if ayah.Number <= lastID {
				return nil, payloadError("ayah number %d after %d breaks corpus order", ayah.Number, lastID)
			}
			if ayah.Juz <= 0 {
				return nil, payloadError("ayah %d has invalid juz %d", ayah.Number, ayah.Juz)
			}
			lastID = ayah.Number
			verses = append(verses, Verse{
				ID:                 ayah.Number,
				Text:               strings.TrimSpace(ayah.Text),
				ChapterNumber:      surah.Number,
				ChapterName:        strings.TrimSpace(surah.Name),
				ChapterEnglishName: strings.TrimSpace(surah.EnglishName),
				NumberInChapter:    ayah.NumberInSurah,
				SectionNumber:      ayah.Juz,
			})
		}
	}
	if len(verses) == 0 {
		return nil, payloadError("response has no ayahs")
	}
	return verses, nil
}

func bodyExcerpt(body []byte) error {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil
	}
	return errors.New(text)
}
