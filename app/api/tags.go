package api

import "strings"

// ParseTags splits a comma-separated tags field into clean tag values.
// Surrounding whitespace is trimmed and empty entries are dropped. The comma
// is the delimiter of the wire format, so a tag can never itself contain one;
// a submitted "a,b" is two tags by definition.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// FormatTags renders tags back into the comma-separated form used by clients.
// ParseTags(FormatTags(tags)) == tags for any list of non-empty, trimmed,
// comma-free tag strings.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
