package platform

import (
	"strings"
)

type Platform string

const (
	YouTube   Platform = "YouTube"
	Instagram Platform = "Instagram"
	TikTok    Platform = "TikTok"
	Twitter   Platform = "Twitter/X"
	Facebook  Platform = "Facebook"
	Reddit    Platform = "Reddit"
	Unknown   Platform = "Unknown"
)

type marker struct {
	platform Platform
	hosts    []string
}

// Ordered: first match wins.
var markers = []marker{
	{YouTube, []string{"youtube.com", "youtu.be"}},
	{Instagram, []string{"instagram.com"}},
	{TikTok, []string{"tiktok.com"}},
	{Twitter, []string{"twitter.com", "x.com"}},
	{Facebook, []string{"facebook.com", "fb.watch"}},
	{Reddit, []string{"reddit.com"}},
}

// Detect classifies a URL by substring match against known platform markers.
func Detect(url string) Platform {
	lower := strings.ToLower(url)
	for _, m := range markers {
		for _, h := range m.hosts {
			if strings.Contains(lower, h) {
				return m.platform
			}
		}
	}
	return Unknown
}

func (p Platform) String() string { return string(p) }
