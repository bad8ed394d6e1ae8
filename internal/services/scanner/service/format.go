package service

import (
	"fmt"

	"codefence/internal/core/langclass"
)

// Format renders the repost: the author's display name on its own line, then
// the original content in a fenced block tagged with the guessed language.
// Unknown labels produce a plain untagged fence
func Format(displayName, content string, lang langclass.Label) string {
	if lang.Known() {
		return fmt.Sprintf("%s\n```%s\n%s\n```", displayName, lang, content)
	}
	return fmt.Sprintf("%s\n```\n%s\n```", displayName, content)
}
