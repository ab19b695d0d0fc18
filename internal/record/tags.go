package record

import "strings"

// ParseTags derives a tag list from a comma-separated input string.
// Each tag is trimmed; empty entries are dropped. Returns nil for no tags so
// the field is omitted from serialized output.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}

	if len(tags) == 0 {
		return nil
	}
	return tags
}

// JoinTags renders a tag list back to its comma-separated interchange form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// HasTag reports whether the record carries the given tag, case-insensitively.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
