package persona

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gongdu300/localy/internal/agent/model"
)

// Caps keeping the tone-transform prompt small.
const (
	maxShoppingLines  = 5
	maxGalleryPerKind = 5
)

// RenderContent flattens the aggregate into the compact text the persona
// model rewrites. Only the fields a reader needs survive; raw IDs,
// coordinates and provider metadata are dropped to keep the prompt small.
// The same text doubles as the body of the no-LLM fallback response.
func RenderContent(agg *model.Aggregate) string {
	if agg == nil {
		return ""
	}

	var b strings.Builder

	if agg.GalleryMode && agg.Gallery != nil {
		renderGallery(&b, agg.Gallery)
		return strings.TrimSpace(b.String())
	}

	if len(agg.DailyPlans) > 0 {
		renderPlans(&b, agg)
	}
	if len(agg.Shopping) > 0 {
		renderShopping(&b, agg.Shopping)
	}
	if agg.Weather != nil && len(agg.Weather.Forecast) > 0 {
		renderWeather(&b, agg.Weather)
	}
	if agg.Budget != nil {
		renderBudget(&b, agg.Budget)
	}
	return strings.TrimSpace(b.String())
}

func renderPlans(b *strings.Builder, agg *model.Aggregate) {
	dayNumbers := make([]int, 0, len(agg.DailyPlans))
	for n := range agg.DailyPlans {
		dayNumbers = append(dayNumbers, n)
	}
	sort.Ints(dayNumbers)

	for _, n := range dayNumbers {
		day := agg.DailyPlans[n]
		if day == nil || len(day.Items) == 0 {
			continue
		}
		if day.SimpleList {
			fmt.Fprintf(b, "[%s 추천 장소]\n", agg.Destination)
		} else {
			fmt.Fprintf(b, "[%d일차 · %s]\n", day.DayNumber, day.Date)
		}
		for _, item := range day.Items {
			fmt.Fprintf(b, "- %s %s", item.Time, item.PlaceName)
			if item.Duration != "" {
				fmt.Fprintf(b, " (%s)", item.Duration)
			}
			if item.Notes != "" {
				fmt.Fprintf(b, " · %s", item.Notes)
			}
			if item.Crowd != nil {
				fmt.Fprintf(b, " · %s", item.Crowd.Recommendation)
			}
			b.WriteString("\n")
		}
		if day.TotalDuration != "" && !day.SimpleList {
			fmt.Fprintf(b, "총 소요 시간: %s\n", day.TotalDuration)
		}
		b.WriteString("\n")
	}
}

func renderShopping(b *strings.Builder, shopping []model.PlaceData) {
	b.WriteString("[쇼핑]\n")
	for i, p := range shopping {
		if i >= maxShoppingLines {
			break
		}
		fmt.Fprintf(b, "- %s", p.Name)
		if p.Address != "" {
			fmt.Fprintf(b, " · %s", p.Address)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func renderGallery(b *strings.Builder, gallery *model.GalleryData) {
	fmt.Fprintf(b, "[%s 사진 모음]\n", gallery.Region)

	kinds := make([]string, 0, len(gallery.Images))
	for k := range gallery.Images {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		fmt.Fprintf(b, "%s:\n", kind)
		for i, u := range gallery.Images[kind] {
			if i >= maxGalleryPerKind {
				break
			}
			fmt.Fprintf(b, "- %s\n", u)
		}
	}
	b.WriteString("\n")
}

func renderWeather(b *strings.Builder, weather *model.WeatherForecast) {
	b.WriteString("[날씨]\n")
	for _, day := range weather.Forecast {
		fmt.Fprintf(b, "- %s: %s, %d~%d도\n", day.Date, day.Condition, day.TempMin, day.TempMax)
	}
	b.WriteString("\n")
}

func renderBudget(b *strings.Builder, budget *model.BudgetData) {
	b.WriteString("[예산]\n")
	fmt.Fprintf(b, "- 총 예산: %s원\n", formatKRW(budget.TotalBudget))

	labels := []struct{ key, label string }{
		{key: "transportation", label: "교통"},
		{key: "accommodation", label: "숙박"},
		{key: "food", label: "식비"},
		{key: "admission", label: "입장료"},
		{key: "other", label: "기타"},
	}
	for _, l := range labels {
		if v, ok := budget.Spent[l.key]; ok {
			fmt.Fprintf(b, "- %s: %s원\n", l.label, formatKRW(v))
		}
	}
	fmt.Fprintf(b, "- 남는 금액: %s원\n", formatKRW(budget.Remaining))
	if budget.Warning {
		b.WriteString("- 예산을 초과했어요!\n")
	}
	b.WriteString("\n")
}

func formatKRW(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",")
}
