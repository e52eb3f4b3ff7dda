package importer

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML flattens a rich-text product description to plain text: tags
// removed, the common entities decoded, whitespace runs collapsed.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(html, " ")
	text = entityReplacer.Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
