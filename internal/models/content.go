package models

import "github.com/maheshrc27/approvals-api/pkg/utils"

type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformTikTok    Platform = "TikTok"
	PlatformYouTube   Platform = "YouTube"
	PlatformLinkedIn  Platform = "LinkedIn"
)

type Format string

const (
	FormatReels    Format = "Reels"
	FormatCarousel Format = "Carrossel"
	FormatSingle   Format = "Post único"
	FormatStories  Format = "Stories"
	FormatOther    Format = "Outro"
)

// Keys are folded with utils.FoldKey.
var platformAliases = map[string]Platform{
	"instagram": PlatformInstagram,
	"insta":     PlatformInstagram,
	"ig":        PlatformInstagram,
	"facebook":  PlatformFacebook,
	"fb":        PlatformFacebook,
	"tiktok":    PlatformTikTok,
	"youtube":   PlatformYouTube,
	"yt":        PlatformYouTube,
	"shorts":    PlatformYouTube,
	"linkedin":  PlatformLinkedIn,
}

var formatAliases = map[string]Format{
	"reels":       FormatReels,
	"reel":        FormatReels,
	"video":       FormatReels,
	"carrossel":   FormatCarousel,
	"carousel":    FormatCarousel,
	"postunico":   FormatSingle,
	"imagemunica": FormatSingle,
	"singleimage": FormatSingle,
	"imagem":      FormatSingle,
	"estatico":    FormatSingle,
	"feed":        FormatSingle,
	"stories":     FormatStories,
	"story":       FormatStories,
	"outro":       FormatOther,
	"outros":      FormatOther,
	"other":       FormatOther,
}

// ParsePlatform falls back to Instagram for anything it does not know.
func ParsePlatform(raw string) Platform {
	if p, ok := platformAliases[utils.FoldKey(raw)]; ok {
		return p
	}
	return PlatformInstagram
}

// ParseFormat falls back to Reels for anything it does not know.
func ParseFormat(raw string) Format {
	if f, ok := formatAliases[utils.FoldKey(raw)]; ok {
		return f
	}
	return FormatReels
}

func (f Format) IsCarousel() bool {
	return f == FormatCarousel
}
