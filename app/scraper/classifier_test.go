package scraper

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url      string
		expected ContentType
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", TypeVideo},
		{"https://youtu.be/dQw4w9WgXcQ", TypeVideo},
		{"https://vimeo.com/123456", TypeVideo},
		{"https://www.bilibili.com/video/BV1xx411c7mD", TypeVideo},
		{"https://example.com/video/highlights", TypeVideo},
		{"https://example.com/whitepaper.pdf", TypePDF},
		{"https://example.com/files/report.PDF", TypePDF},
		{"https://example.com/photo.jpg", TypeImage},
		{"https://example.com/diagram.svg", TypeImage},
		{"https://example.com/image.webp", TypeImage},
		{"https://example.com/blog/some-post", TypeArticle},
		{"https://example.com", TypeArticle},
		{"https://myyoutube.company.com/page", TypeArticle},
	}

	for _, tt := range tests {
		if got := Classify(tt.url); got != tt.expected {
			t.Errorf("Classify(%s) = %s, expected %s", tt.url, got, tt.expected)
		}
	}
}

func TestClassifyIndependentOfFetch(t *testing.T) {
	// Classification must hold for URLs that can never be fetched
	if got := Classify("https://unreachable.invalid/talk.pdf"); got != TypePDF {
		t.Errorf("Expected pdf for unreachable URL, got: %s", got)
	}
}

func TestDomain(t *testing.T) {
	if got := Domain("https://www.example.com/path"); got != "example.com" {
		t.Errorf("Expected 'example.com', got: %s", got)
	}
	if got := Domain("https://blog.example.org/post"); got != "blog.example.org" {
		t.Errorf("Expected 'blog.example.org', got: %s", got)
	}
}
