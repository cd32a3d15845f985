package lookup

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/gongdu300/localy/internal/agent/model"
)

// MockWeather produces a deterministic forecast per region and date. Good
// enough for plan rendering until a real forecast feed is wired in.
type MockWeather struct{}

var weatherConditions = []struct {
	condition string
	min, max  int
}{
	{condition: "맑음", min: 12, max: 22},
	{condition: "구름 조금", min: 10, max: 20},
	{condition: "흐림", min: 9, max: 18},
	{condition: "비", min: 8, max: 16},
}

func (MockWeather) Forecast(_ context.Context, region, startDate, endDate string) (*model.WeatherForecast, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		end = start
	}

	forecast := &model.WeatherForecast{Region: region}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		c := weatherConditions[pick(region+date, len(weatherConditions))]
		forecast.Forecast = append(forecast.Forecast, model.WeatherDay{
			Date:      date,
			Condition: c.condition,
			TempMin:   c.min,
			TempMax:   c.max,
		})
	}
	return forecast, nil
}

// MockTransit returns canned regional traffic status.
type MockTransit struct{}

var trafficStatuses = []string{"원활", "보통", "혼잡"}

func (MockTransit) Info(_ context.Context, region string) (*model.TransitInfo, error) {
	return &model.TransitInfo{
		Region:        region,
		TrafficStatus: trafficStatuses[pick(region, len(trafficStatuses))],
		MajorHubs:     []string{region + "역", region + " 시외버스터미널"},
	}, nil
}

func pick(seed string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return int(h.Sum32()) % n
}
