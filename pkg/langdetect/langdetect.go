package langdetect

import "unicode"

// Language codes returned by Detect.
const (
	Korean  = "ko"
	English = "en"
)

// Detect returns the dominant language of the text, judged by counting Hangul
// syllables versus Latin letters. Mixed input counts as Korean when at least
// half of the letters are Hangul. Text with neither script defaults to English.
func Detect(text string) string {
	var korean, english int
	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			korean++
		case unicode.Is(unicode.Latin, r):
			english++
		}
	}

	if korean == 0 && english == 0 {
		return English
	}
	if korean > 0 && english == 0 {
		return Korean
	}
	if english > 0 && korean == 0 {
		return English
	}

	if float64(korean)/float64(korean+english) >= 0.5 {
		return Korean
	}
	return English
}

// ShouldUseTTS reports whether spoken audio should accompany the response.
// Only English output is voiced.
func ShouldUseTTS(text string) bool {
	return Detect(text) == English
}
