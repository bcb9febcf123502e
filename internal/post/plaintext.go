package post

import (
	"path"
	"regexp"
	"strings"
)

func replaceWith(template string, re *regexp.Regexp) func(string) string {
	return func(s string) string { return re.ReplaceAllString(s, template) }
}

var (
	imagePattern      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	headingPattern    = regexp.MustCompile(`(?m)^[ \t]*(?:#+[ \t]+)+`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	fencePattern      = regexp.MustCompile("(?s)```(?:[^\n`]*\n)?(.*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	strongPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	emphasisPattern   = regexp.MustCompile(`\*([^*]+?)\*`)
	bulletPattern     = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+][ \t]+)+`)
	wikiLinkPattern   = regexp.MustCompile(`\[\[([^|\]]+)(?:\|([^\]]+))?\]\]`)
	blankLinePattern  = regexp.MustCompile(`\n\s*\n`)
)

var plainTextSteps = []func(string) string{
	replaceWith("", imagePattern),
	replaceWith("", headingPattern),
	replaceWith("$1", linkPattern),
	replaceWith("$1", fencePattern),
	replaceWith("$1", inlineCodePattern),
	replaceWith("$1", strongPattern),
	replaceWith("$1", emphasisPattern),
	replaceWith("", bulletPattern),
	wikiLinkLabels,
	replaceWith("\n", blankLinePattern),
	strings.TrimSpace,
}

// ExtractPlainText strips markdown syntax from body and keeps the readable
// text. Applying it to its own output returns the same string.
//
// The steps run until the text stops changing. Each step either leaves the
// text alone or makes it shorter, so the loop ends.
func ExtractPlainText(body string) string {
	text := strings.ReplaceAll(body, "\r\n", "\n")
	for {
		next := text
		for _, step := range plainTextSteps {
			next = step(next)
		}
		if next == text {
			return text
		}
		text = next
	}
}

func wikiLinkLabels(text string) string {
	return wikiLinkPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := wikiLinkPattern.FindStringSubmatch(match)
		if label := strings.TrimSpace(groups[2]); label != "" {
			return label
		}
		target := strings.TrimSpace(groups[1])
		target = strings.TrimSuffix(path.Base(target), ".md")
		return target
	})
}
