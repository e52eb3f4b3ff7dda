package importer

import "strings"

// categoryKeywords maps taxonomy substrings to the storefront's fixed
// category vocabulary. Checked in order, case-insensitively.
var categoryKeywords = []struct {
	keywords []string
	category string
}{
	{[]string{"skin care", "lotions", "moisturizers"}, "Skin Care"},
	{[]string{"bath & body", "body wash"}, "Body Care"},
	{[]string{"hair care", "hair styling"}, "Hair Care"},
	{[]string{"fragrance", "perfumes", "body mist"}, "Fragrance"},
	{[]string{"lip makeup", "lipstick", "lip gloss"}, "Lip Makeup"},
	{[]string{"face makeup", "blush", "bronzer"}, "Face Makeup"},
	{[]string{"eye makeup", "eyeshadow", "mascara"}, "Eye Makeup"},
	{[]string{"tools", "brushes", "sponge"}, "Tools & Brushes"},
}

// ExtractCategory maps a "A > B > C" taxonomy string to a storefront
// category: keyword match first, then positional extraction from the
// hierarchy, then "Other".
func ExtractCategory(fullCategory string) string {
	if fullCategory == "" {
		return "Other"
	}

	lower := strings.ToLower(fullCategory)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}

	parts := strings.Split(fullCategory, ">")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// Deep taxonomies carry the useful segment second to last.
	if len(parts) >= 5 {
		if parts[len(parts)-2] != "" {
			return parts[len(parts)-2]
		}
		return parts[len(parts)-1]
	}
	if len(parts) >= 2 {
		return parts[len(parts)-1]
	}
	if parts[0] != "" {
		return parts[0]
	}
	return "Other"
}
