package lookup

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/gongdu300/localy/internal/agent/model"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// ShopKind is an inferred shop category with the Places type that narrows
// the nearby search.
type ShopKind struct {
	Name      string
	PlaceType maps.PlaceType
}

var (
	kindConvenience = ShopKind{Name: "편의점", PlaceType: maps.PlaceTypeConvenienceStore}
	kindPharmacy    = ShopKind{Name: "약국", PlaceType: maps.PlaceTypePharmacy}
	kindMart        = ShopKind{Name: "마트", PlaceType: maps.PlaceTypeSupermarket}
	kindGeneric     = ShopKind{Name: "쇼핑", PlaceType: maps.PlaceTypeShoppingMall}
)

// shopKeywords maps direct store-kind mentions to a shop kind.
var shopKeywords = []struct {
	words []string
	kind  ShopKind
}{
	{words: []string{"편의점", "cu", "gs25", "세븐일레븐", "이마트24"}, kind: kindConvenience},
	{words: []string{"약국", "약"}, kind: kindPharmacy},
	{words: []string{"마트", "이마트", "홈플러스", "롯데마트", "장보기"}, kind: kindMart},
}

// productKeywords maps product mentions to the store kind that sells them.
var productKeywords = []struct {
	words []string
	kind  ShopKind
}{
	{words: []string{"라면", "컵라면", "삼각김밥", "과자", "음료수", "맥주"}, kind: kindConvenience},
	{words: []string{"감기약", "두통약", "소화제", "밴드", "파스", "마스크"}, kind: kindPharmacy},
	{words: []string{"과일", "채소", "고기", "식재료", "생수"}, kind: kindMart},
}

// brandFilters keep chain-specific queries narrow.
var brandFilters = []string{"다이소", "올리브영", "cu", "gs25", "이마트", "홈플러스", "롯데마트"}

// InferShopKind decides which kind of shop the user is after: an explicit
// store mention wins, then a product implication, otherwise generic shopping.
func InferShopKind(userInput string) ShopKind {
	text := strings.ToLower(userInput)
	for _, k := range shopKeywords {
		for _, w := range k.words {
			if strings.Contains(text, w) {
				return k.kind
			}
		}
	}
	for _, k := range productKeywords {
		for _, w := range k.words {
			if strings.Contains(text, w) {
				return k.kind
			}
		}
	}
	return kindGeneric
}

// BrandKeyword returns a brand name mentioned in the text, or "" when no
// known brand appears.
func BrandKeyword(userInput string) string {
	text := strings.ToLower(userInput)
	for _, b := range brandFilters {
		if strings.Contains(text, b) {
			return b
		}
	}
	return ""
}

// ShoppingSearcher finds shops near the region centre, narrowed by the shop
// kind and brand inferred from the user's message.
type ShoppingSearcher struct {
	Places *GooglePlaces
	Agent  string
}

func (s *ShoppingSearcher) Search(ctx context.Context, region, userInput string) model.LookupResult {
	kind := InferShopKind(userInput)
	brand := BrandKeyword(userInput)

	places, err := s.Places.NearbyShopping(ctx, region, kind.PlaceType, brand)
	if err != nil {
		logx.Warn().Err(err).
			Str("agent", s.Agent).
			Str("region", region).
			Str("kind", kind.Name).
			Msg("shopping search failed")
		return model.FailLookup(s.Agent, err, fmt.Sprintf("%s %s 검색에 실패했어요", region, kind.Name))
	}
	return model.OkLookup(s.Agent, places, fmt.Sprintf("%s 근처 %s %d곳을 찾았어요", region, kind.Name, len(places)))
}
