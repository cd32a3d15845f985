package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

const tavilySearchURL = "https://api.tavily.com/search"

// galleryTopics drives which image sets a region gallery contains.
var galleryTopics = []struct {
	key   string
	query string
}{
	{key: "풍경", query: "%s 풍경 사진"},
	{key: "명소", query: "%s 관광 명소 사진"},
	{key: "음식", query: "%s 대표 음식 사진"},
}

// TavilyClient fetches image URLs through the Tavily search API.
type TavilyClient struct {
	apiKey    string
	http      *http.Client
	maxImages int
}

func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:    apiKey,
		http:      &http.Client{Timeout: timeout},
		maxImages: 5,
	}
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	IncludeImages bool   `json:"include_images"`
	MaxResults    int    `json:"max_results"`
}

type tavilyResponse struct {
	Images []string `json:"images"`
}

// SearchImages returns up to maxImages https image URLs for a query,
// deduplicated in order.
func (t *TavilyClient) SearchImages(ctx context.Context, query string) ([]string, error) {
	payload, err := json.Marshal(tavilyRequest{
		APIKey:        t.apiKey,
		Query:         query,
		IncludeImages: true,
		MaxResults:    t.maxImages,
	})
	if err != nil {
		return nil, fmt.Errorf("encode tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilySearchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily responded %d", resp.StatusCode)
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tavily response: %w", err)
	}

	seen := make(map[string]bool, len(out.Images))
	urls := make([]string, 0, t.maxImages)
	for _, u := range out.Images {
		if !strings.HasPrefix(u, "https://") || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
		if len(urls) >= t.maxImages {
			break
		}
	}
	return urls, nil
}

// Build collects a themed image gallery for the region. Topics that fail are
// skipped rather than failing the whole gallery.
func (t *TavilyClient) Build(ctx context.Context, region string) (*model.GalleryData, error) {
	images := make(map[string][]string, len(galleryTopics))
	for _, topic := range galleryTopics {
		urls, err := t.SearchImages(ctx, fmt.Sprintf(topic.query, region))
		if err != nil {
			logx.Warn().Err(err).
				Str("region", region).
				Str("topic", topic.key).
				Msg("gallery image search failed")
			continue
		}
		if len(urls) > 0 {
			images[topic.key] = urls
		}
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no gallery images for %q", region)
	}

	return &model.GalleryData{
		Region:  region,
		Images:  images,
		Message: fmt.Sprintf("%s의 사진을 모아봤어요.", region),
	}, nil
}
