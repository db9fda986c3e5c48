package analyzer

import (
	"fmt"
	"strings"

	"github.com/lukashev/linkstash/app/scraper"
)

const promptTemplate = `Analyze the following web page and respond only with a valid JSON object. Do not include any additional text or commentary.

URL: %s
Content type: %s
Title: %s
Description: %s

Content:
%s

Pick the category from this exact list: %s

%sExpected JSON response format:
{
  "summary": "Concise summary of the page in at most 500 characters, in the language of the content",
  "category": "One of the listed categories, verbatim",
  "tags": ["up to 10 short lowercase tags"],
  "language": "ISO 639-1 code of the content language",
  "sentiment": "positive, neutral or negative",
  "readingTime": 3
}`

func buildPrompt(content *scraper.Content, categories []string, instructions string) string {
	extra := ""
	if instructions = strings.TrimSpace(instructions); instructions != "" {
		extra = "Additional instructions: " + instructions + "\n\n"
	}

	return fmt.Sprintf(promptTemplate,
		content.URL,
		content.ContentType,
		content.Title,
		content.Description,
		content.Content,
		strings.Join(categories, ", "),
		extra,
	)
}
