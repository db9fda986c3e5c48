package scraper

import (
	"net/url"
	"path"
	"strings"
)

var videoHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"bilibili.com",
	"dailymotion.com",
	"twitch.tv",
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".bmp":  true,
	".avif": true,
}

// Classify infers the content type from the URL alone, so the result is
// available even when the page itself cannot be fetched.
func Classify(rawURL string) ContentType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return TypeArticle
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	for _, videoHost := range videoHosts {
		if host == videoHost || strings.HasSuffix(host, "."+videoHost) {
			return TypeVideo
		}
	}
	if strings.Contains(strings.ToLower(u.Path), "/video/") {
		return TypeVideo
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == ".pdf" {
		return TypePDF
	}
	if imageExtensions[ext] {
		return TypeImage
	}

	return TypeArticle
}

// Domain returns the URL host without a leading "www.".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
