package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gongdu300/localy/internal/agent/model"
)

const (
	kakaoKeywordURL    = "https://dapi.kakao.com/v2/local/search/keyword.json"
	kakaoDirectionsURL = "https://apis-navi.kakaomobility.com/v1/directions"
)

// KakaoClient talks to Kakao Local (keyword → coordinates) and Kakao
// Mobility (directions with taxi/toll fares). Kakao has no Go SDK, so both
// endpoints are called directly.
type KakaoClient struct {
	apiKey string
	http   *http.Client
}

func NewKakaoClient(apiKey string, timeout time.Duration) *KakaoClient {
	return &KakaoClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

type kakaoKeywordResponse struct {
	Documents []struct {
		PlaceName string `json:"place_name"`
		X         string `json:"x"`
		Y         string `json:"y"`
	} `json:"documents"`
}

// Coordinates resolves a place name via keyword search. Kakao returns
// x=longitude, y=latitude as strings.
func (k *KakaoClient) Coordinates(ctx context.Context, query string) (model.Coordinate, error) {
	u := kakaoKeywordURL + "?" + url.Values{"query": {query}, "size": {"1"}}.Encode()
	body, err := k.get(ctx, u)
	if err != nil {
		return model.Coordinate{}, err
	}

	var resp kakaoKeywordResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.Coordinate{}, fmt.Errorf("decode keyword response: %w", err)
	}
	if len(resp.Documents) == 0 {
		return model.Coordinate{}, fmt.Errorf("no coordinates for %q", query)
	}

	doc := resp.Documents[0]
	lng, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("parse longitude %q: %w", doc.X, err)
	}
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("parse latitude %q: %w", doc.Y, err)
	}
	return model.Coordinate{Longitude: lng, Latitude: lat}, nil
}

type kakaoDirectionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance int `json:"distance"`
			Duration int `json:"duration"`
			Fare     struct {
				Taxi int `json:"taxi"`
				Toll int `json:"toll"`
			} `json:"fare"`
		} `json:"summary"`
	} `json:"routes"`
}

// Route resolves both endpoints to coordinates and asks Kakao Mobility for a
// car route. Distance comes back in metres, duration in seconds.
func (k *KakaoClient) Route(ctx context.Context, origin, destination string) (*model.RouteFare, error) {
	from, err := k.Coordinates(ctx, origin)
	if err != nil {
		return nil, err
	}
	to, err := k.Coordinates(ctx, destination)
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"origin":      {fmt.Sprintf("%f,%f", from.Longitude, from.Latitude)},
		"destination": {fmt.Sprintf("%f,%f", to.Longitude, to.Latitude)},
		"priority":    {"RECOMMEND"},
	}
	body, err := k.get(ctx, kakaoDirectionsURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp kakaoDirectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("no route from %q to %q", origin, destination)
	}

	s := resp.Routes[0].Summary
	return &model.RouteFare{
		TaxiFare:    s.Fare.Taxi,
		TollFare:    s.Fare.Toll,
		DurationMin: s.Duration / 60,
		DistanceKm:  float64(s.Distance) / 1000,
	}, nil
}

func (k *KakaoClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build kakao request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+k.apiKey)

	resp, err := k.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao responded %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
