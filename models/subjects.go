package models

import "strings"

// AvailableSubjects is the controlled vocabulary shown in search filters and
// profile tags. AI-suggested tags are filtered against it before display.
var AvailableSubjects = []string{
	"Algebra",
	"Calculus",
	"Computer Science",
	"Counseling",
	"Creative Writing",
	"Differential Equations",
	"Essay Writing",
	"Grammar",
	"History",
	"JavaScript",
	"Literature",
	"Physics",
	"Python",
	"React",
	"Statistics",
}

// FilterToSubjects keeps only tags that match the controlled vocabulary,
// case-insensitively, returning them in canonical casing without duplicates.
func FilterToSubjects(tags []string) []string {
	canonical := make(map[string]string, len(AvailableSubjects))
	for _, s := range AvailableSubjects {
		canonical[strings.ToLower(s)] = s
	}

	filtered := make([]string, 0, len(tags))
	seen := make(map[string]bool)
	for _, tag := range tags {
		key := strings.ToLower(strings.TrimSpace(tag))
		subject, ok := canonical[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		filtered = append(filtered, subject)
	}
	return filtered
}
