package platform

// Format is the user-facing quality choice.
type Format string

const (
	FormatVideo  Format = "video"
	FormatAudio  Format = "audio"
	FormatMedium Format = "medium"
	FormatSmall  Format = "small"
)

var formatSelectors = map[Format]string{
	FormatVideo:  "bv*+ba/b",
	FormatAudio:  "bestaudio",
	FormatMedium: "best[height<=720]/best",
	FormatSmall:  "best[height<=480]/best",
}

// degradedSelectors are the lower-complexity substitutes used by the second
// fallback attempt. Audio keeps its selector.
var degradedSelectors = map[Format]string{
	FormatVideo:  "best[height<=720]",
	FormatMedium: "best[height<=480]",
	FormatSmall:  "worst",
}

func ValidFormat(f string) bool {
	_, ok := formatSelectors[Format(f)]
	return ok
}

// Selector resolves a format choice to an engine selector for the platform.
// Single-stream platforms override the generic map.
func Selector(p Platform, f Format) string {
	switch p {
	case Instagram, TikTok:
		return "best"
	}
	if s, ok := formatSelectors[f]; ok {
		return s
	}
	return "best"
}
