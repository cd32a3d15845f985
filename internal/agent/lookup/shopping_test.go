package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"
)

func TestInferShopKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected maps.PlaceType
	}{
		{name: "explicit convenience store", input: "근처 편의점 어디 있어?", expected: maps.PlaceTypeConvenienceStore},
		{name: "brand implies convenience store", input: "GS25 찾아줘", expected: maps.PlaceTypeConvenienceStore},
		{name: "explicit pharmacy", input: "약국 좀 알려줘", expected: maps.PlaceTypePharmacy},
		{name: "product implies pharmacy", input: "감기약 사야 해", expected: maps.PlaceTypePharmacy},
		{name: "product implies convenience store", input: "컵라면이랑 맥주 사고 싶어", expected: maps.PlaceTypeConvenienceStore},
		{name: "product implies mart", input: "과일이랑 식재료 살 데", expected: maps.PlaceTypeSupermarket},
		{name: "generic shopping fallback", input: "쇼핑할 만한 곳 추천해줘", expected: maps.PlaceTypeShoppingMall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferShopKind(tt.input).PlaceType)
		})
	}
}

func TestBrandKeyword(t *testing.T) {
	assert.Equal(t, "다이소", BrandKeyword("강릉 다이소 어디야"))
	assert.Equal(t, "cu", BrandKeyword("CU 편의점 있어?"))
	assert.Equal(t, "", BrandKeyword("그냥 아무 데나"))
}
