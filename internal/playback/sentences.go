package playback

import "strings"

// SplitSentences splits text on periods. Chunks are trimmed and empty chunks
// dropped, so "Hello. World." yields "Hello" and "World".
func SplitSentences(text string) []string {
	var sentences []string
	for _, part := range strings.Split(text, ".") {
		if part = strings.TrimSpace(part); part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
