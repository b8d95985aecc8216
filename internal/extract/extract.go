// Package extract pulls a tagged fenced block out of free-form model output.
package extract

import (
	"strings"
)

const fence = "```"

type block struct {
	tag    string
	body   string
	closed bool
}

// Schema returns the trimmed body of the first fenced block tagged with tag.
// ok is false when no such block exists, when it is never closed, or when its body is blank.
// Blocks after the first tagged one are ignored.
func Schema(reply, tag string) (schema string, ok bool) {
	for _, b := range scan(reply) {
		if !strings.EqualFold(b.tag, tag) {
			continue
		}
		if !b.closed {
			return "", false
		}
		body := strings.TrimSpace(b.body)
		if body == "" {
			return "", false
		}
		return body, true
	}
	return "", false
}

// HasFence reports whether reply opens a block tagged with tag, whatever its content.
func HasFence(reply, tag string) bool {
	for _, b := range scan(reply) {
		if strings.EqualFold(b.tag, tag) {
			return true
		}
	}
	return false
}

// scan pairs fences in order: each opener is closed by the next fence after it.
func scan(s string) []block {
	var blocks []block
	for {
		open := strings.Index(s, fence)
		if open < 0 {
			return blocks
		}
		s = s[open+len(fence):]

		tagEnd := strings.IndexFunc(s, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '`'
		})
		if tagEnd < 0 {
			tagEnd = len(s)
		}
		b := block{tag: s[:tagEnd]}
		s = s[tagEnd:]

		end := strings.Index(s, fence)
		if end < 0 {
			b.body = s
			return append(blocks, b)
		}
		b.body = s[:end]
		b.closed = true
		blocks = append(blocks, b)
		s = s[end+len(fence):]
	}
}
