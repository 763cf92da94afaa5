package platform

// Attempt describes one strategy of the fallback chain: an engine format
// selector plus the option patches that distinguish it from the previous try.
type Attempt struct {
	Label         string
	Selector      string
	ExtractAudio  bool
	ClientHints   []string
	ExtractorArgs []string
}

// Attempts builds the ordered strategy list for one request. YouTube gets the
// full three-step chain; every other platform gets a single tuned attempt.
func Attempts(p Platform, f Format) []Attempt {
	switch p {
	case YouTube:
		attempts := []Attempt{
			{
				Label:        "standard",
				Selector:     Selector(p, f),
				ExtractAudio: f == FormatAudio,
				ClientHints:  []string{"android", "web"},
				ExtractorArgs: []string{
					"youtube:player_client=android,web",
					"youtube:player_skip=configs,webpage",
				},
			},
		}
		degraded := attempts[0]
		degraded.Label = "degraded-format"
		if s, ok := degradedSelectors[f]; ok {
			degraded.Selector = s
		}
		attempts = append(attempts, degraded)

		audio := attempts[0]
		audio.Label = "audio-only"
		audio.Selector = "bestaudio"
		audio.ExtractAudio = true
		return append(attempts, audio)
	case Instagram:
		return []Attempt{{
			Label:         "standard",
			Selector:      Selector(p, f),
			ExtractorArgs: []string{"instagram:post=single"},
		}}
	case TikTok:
		return []Attempt{{
			Label:         "standard",
			Selector:      Selector(p, f),
			ExtractorArgs: []string{"tiktok:app_version=29.7.4"},
		}}
	default:
		return []Attempt{{
			Label:        "standard",
			Selector:     Selector(p, f),
			ExtractAudio: f == FormatAudio,
		}}
	}
}
