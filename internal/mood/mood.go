// Package mood maps between the four representations of a mood rating:
// the color label the client submits, the ordinal score 1-5, the readable
// text label, and the emoji.
package mood

// The five color labels, lowest to highest.
const (
	Red    = "Red"
	Orange = "Orange"
	Yellow = "Yellow"
	Green  = "Green"
	Blue   = "Blue"
)

// Coarse sentiment tags assigned by the analysis side, never by the user.
const (
	TagPositive = "positive"
	TagNeutral  = "neutral"
	TagNegative = "negative"
)

// Colors lists the labels in ascending mood order.
var Colors = []string{Red, Orange, Yellow, Green, Blue}

// Tags lists the sentiment tags.
var Tags = []string{TagPositive, TagNeutral, TagNegative}

var scores = map[string]int{
	Red:    1,
	Orange: 2,
	Yellow: 3,
	Green:  4,
	Blue:   5,
}

var texts = map[string]string{
	Red:    "Very Sad",
	Orange: "Sad",
	Yellow: "Neutral",
	Green:  "Happy",
	Blue:   "Very Happy",
}

var emojis = map[string]string{
	Red:    "😢",
	Orange: "😕",
	Yellow: "😐",
	Green:  "😊",
	Blue:   "😄",
}

var ratingColors = map[string]string{
	"1": Red,
	"2": Orange,
	"3": Yellow,
	"4": Green,
	"5": Blue,
}

// Score returns the ordinal 1-5 for a color label. Unknown labels land on
// the neutral midpoint.
func Score(color string) int {
	if s, ok := scores[color]; ok {
		return s
	}
	return scores[Yellow]
}

// Text returns the readable label for a color, defaulting to Neutral.
func Text(color string) string {
	if t, ok := texts[color]; ok {
		return t
	}
	return texts[Yellow]
}

// Emoji returns the emoji for a color, defaulting to the neutral face.
func Emoji(color string) string {
	if e, ok := emojis[color]; ok {
		return e
	}
	return emojis[Yellow]
}

// ColorFromRating translates a numeric rating string ("1".."5") to its color
// label. The second return is false for anything out of range; callers treat
// that as "apply no filter" rather than an error.
func ColorFromRating(rating string) (string, bool) {
	c, ok := ratingColors[rating]
	return c, ok
}
