package classify

import (
	"strings"

	"github.com/gongdu300/localy/internal/agent/graph/parsers"
	"github.com/gongdu300/localy/internal/agent/model"
)

// keywordRules maps message keywords to intent labels. Order matters: a plan
// request often also names food or lodging, so the plan rule is checked
// before the narrower search rules.
var keywordRules = []struct {
	label model.Label
	words []string
}{
	{label: model.LabelTravelPlan, words: []string{"일정", "계획", "코스", "스케줄", "짜줘", "짜 줘"}},
	{label: model.LabelRestaurantSearch, words: []string{"맛집", "음식", "식당", "먹을", "레스토랑", "카페", "디저트", "빵"}},
	{label: model.LabelAccommodationSearch, words: []string{"숙소", "호텔", "모텔", "펜션", "게스트하우스"}},
	{label: model.LabelSpotSearch, words: []string{"관광", "가볼만", "가볼 만", "명소", "여행지", "볼거리"}},
	{label: model.LabelShoppingSearch, words: []string{"쇼핑", "편의점", "마트", "다이소", "약국", "올리브영"}},
	{label: model.LabelPhotoSearch, words: []string{"사진", "풍경", "이미지", "갤러리"}},
}

// knownRegions is the destination vocabulary the fallback scanner recognises.
// More specific districts come before their parent city so "해운대" wins over
// "부산" when both appear.
var knownRegions = []string{
	"해운대", "광안리", "서귀포", "강남", "명동",
	"서울", "부산", "제주", "강릉", "속초", "양양", "전주", "경주",
	"여수", "인천", "대전", "대구", "광주", "울산", "춘천",
}

// FallbackIntent classifies deterministically from keywords. It backs the LLM
// classifier when the model is unavailable or returns garbage, and never
// fails: with no keyword match the message is treated as plain chat.
func FallbackIntent(userInput string, defaults *model.PipelineConfig) *model.Intent {
	intent := &model.Intent{Label: model.LabelChat}
	for _, rule := range keywordRules {
		if containsAny(userInput, rule.words) {
			intent.Label = rule.label
			break
		}
	}
	if intent.Label != model.LabelChat {
		intent.Destination = scanRegion(userInput)
		parsers.ApplyDefaults(intent, defaults)
	}
	return intent
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func scanRegion(text string) string {
	for _, region := range knownRegions {
		if strings.Contains(text, region) {
			return region
		}
	}
	return ""
}
