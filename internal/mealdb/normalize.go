package mealdb

import "strings"

// collapseSlots turns the fixed slot array into an ingredient list. Slots are
// visited in index order; a slot survives only when its trimmed ingredient name
// is non-empty. Duplicate names are kept.
func collapseSlots(slots []slot) []Ingredient {
	out := make([]Ingredient, 0, len(slots))
	for _, s := range slots {
		name := strings.TrimSpace(s.Ingredient)
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(s.Measure),
		})
	}
	return out
}

// splitTags splits the comma-separated strTags value.
func splitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
