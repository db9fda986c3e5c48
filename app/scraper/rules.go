package scraper

import (
	"bytes"
	"net/url"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Text shorter than this is treated as a miss and the next rule is tried.
const minContentChars = 40

const boilerplateSelector = "script, style, nav, footer, header, aside, form, iframe, noscript, " +
	`[class*="advert"], [class*="sidebar"], [class*="comment"], [class*="related"], .ad, .ads`

type page struct {
	url string
	raw []byte
	doc *goquery.Document
}

// rule is one entry of the ordered extraction chain. Extract returns "" when
// the rule does not apply; the first rule yielding non-trivial text wins.
type rule struct {
	Name    string
	Extract func(p *page) string
}

func rulesFor(contentType ContentType) []rule {
	switch contentType {
	case TypeVideo:
		return []rule{
			selectorRule("platform-description", `#description, ytd-expander, [class*="video-description"], [id*="description"]`),
			selectorRule("description-class", ".description, .summary"),
			selectorRule("body", "body"),
		}
	case TypePDF, TypeImage:
		return []rule{
			selectorRule("body", "body"),
		}
	default:
		return []rule{
			selectorRule("article-container", "article"),
			selectorRule("content-class", `[class*="post-content"], [class*="article-content"], [class*="entry-content"], [itemprop="articleBody"], .post-body, .story-body`),
			selectorRule("main", "main"),
			readabilityRule(),
			selectorRule("body", "body"),
		}
	}
}

// extractContent runs the rule chain and returns the winning text plus the
// name of the rule that produced it.
func extractContent(p *page, contentType ContentType) (string, string) {
	for _, r := range rulesFor(contentType) {
		text := CleanText(r.Extract(p))
		if utf8.RuneCountInString(text) >= minContentChars {
			return text, r.Name
		}
	}
	return "", ""
}

func selectorRule(name, selector string) rule {
	return rule{
		Name: name,
		Extract: func(p *page) string {
			sel := p.doc.Find(selector).First()
			if sel.Length() == 0 {
				return ""
			}
			return stripBoilerplate(sel)
		},
	}
}

func readabilityRule() rule {
	return rule{
		Name: "readability",
		Extract: func(p *page) string {
			pageURL, err := url.Parse(p.url)
			if err != nil {
				return ""
			}
			article, err := readability.FromReader(bytes.NewReader(p.raw), pageURL)
			if err != nil {
				return ""
			}
			return article.TextContent
		},
	}
}

// stripBoilerplate removes navigation, scripts, ads and similar regions from a
// copy of the selection before extracting its text.
func stripBoilerplate(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find(boilerplateSelector).Remove()
	return clone.Text()
}
