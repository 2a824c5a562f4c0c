package blog

import (
	"strings"

	"github.com/Semior001/newsblog/app/store"
)

// emotionIndicators are keywords of each emotion, in the order
// emotions are preferred on tie.
var emotionIndicators = []struct {
	emotion  store.Emotion
	keywords []string
}{
	{store.Positive, []string{"success", "achievement", "relief", "hail", "satisfaction", "praise"}},
	{store.Negative, []string{"tension", "war", "arrest", "attack", "fear", "threat", "terror"}},
	{store.Neutral, []string{"report", "announce", "state", "inform", "reveal"}},
	{store.Urgent, []string{"breaking", "alert", "urgent", "critical", "immediate"}},
}

// DetectEmotion returns the dominant emotion of the text.
// Each keyword counts once, regardless of the number of its occurrences.
// Text is expected to be lower-cased.
func DetectEmotion(text string) store.Emotion {
	dominant, maxCount := store.Neutral, 0
	for _, ind := range emotionIndicators {
		count := 0
		for _, kw := range ind.keywords {
			if strings.Contains(text, kw) {
				count++
			}
		}

		if count > maxCount {
			dominant, maxCount = ind.emotion, count
		}
	}
	return dominant
}

// EffectiveHumor returns the humor level to write the post with.
// Humor is toned down for negative news, unless the user asked for none.
func EffectiveHumor(requested string, emotion store.Emotion) string {
	if emotion == store.Negative && requested != "none" {
		return "subtle"
	}
	return requested
}

// articlesText joins titles and snippets of articles into a lower-cased text.
func articlesText(articles []store.Article) string {
	parts := make([]string, 0, len(articles)*2)
	for _, a := range articles {
		if a.Title != "" {
			parts = append(parts, a.Title)
		}
	}
	for _, a := range articles {
		if a.Snippet != "" {
			parts = append(parts, a.Snippet)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
