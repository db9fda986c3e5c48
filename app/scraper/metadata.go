package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if value, ok := doc.Find(selector).First().Attr("content"); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}

// extractTitle walks the preference chain: Open Graph, standard meta tags,
// the title element, then the domain name.
func extractTitle(doc *goquery.Document, rawURL string) string {
	if title := metaContent(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`); title != "" {
		return title
	}
	if title := CleanText(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return Domain(rawURL)
}

func extractDescription(doc *goquery.Document) string {
	if desc := metaContent(doc, `meta[property="og:description"]`, `meta[name="twitter:description"]`, `meta[name="description"]`); desc != "" {
		return desc
	}
	return NoDescription
}

func extractAuthor(doc *goquery.Document) string {
	return metaContent(doc, `meta[name="author"]`, `meta[property="article:author"]`)
}

func extractPublishDate(doc *goquery.Document) string {
	value := metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`, `meta[itemprop="datePublished"]`)
	if value == "" {
		value, _ = doc.Find("time[datetime]").First().Attr("datetime")
	}
	if value == "" {
		return ""
	}

	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return ""
	}
	return parsed.Format(time.RFC3339)
}

func extractSiteName(doc *goquery.Document) string {
	return metaContent(doc, `meta[property="og:site_name"]`, `meta[name="application-name"]`)
}

// extractLanguageHint reads the language declared in the markup, normalized
// to a lowercase two-letter code.
func extractLanguageHint(doc *goquery.Document) string {
	lang, _ := doc.Find("html").First().Attr("lang")
	if lang == "" {
		lang = metaContent(doc, `meta[http-equiv="content-language"]`, `meta[property="og:locale"]`)
	}

	lang = strings.TrimSpace(lang)
	if len(lang) < 2 {
		return ""
	}
	return strings.ToLower(lang[:2])
}

func extractKeywords(doc *goquery.Document) []string {
	raw := metaContent(doc, `meta[name="keywords"]`, `meta[property="article:tag"]`)
	if raw == "" {
		return nil
	}

	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
