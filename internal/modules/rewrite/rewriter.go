package rewrite

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-telegram/bot/models"
)

// Internal message link: https://t.me/c/<channel>/<message>
var (
	linkPattern       = regexp.MustCompile(`https://t\.me/c/(\d+)/(\d+)`)
	entityLinkPattern = regexp.MustCompile(`^https://t\.me/c/(\d+)/(\d+)`)
)

// Result is the outcome of a rewrite pass. Changed is false when the input
// contained nothing to rewrite; Text and Entities then echo the input.
type Result struct {
	Text     string
	Entities []models.MessageEntity
	Changed  bool
	Links    int
}

// BareChannelID derives the link form of a chat ID: Telegram links carry the
// channel ID without the internal -100 prefix.
func BareChannelID(chatID int64) string {
	s := strconv.FormatInt(chatID, 10)
	if strings.HasPrefix(s, "-100") {
		return s[4:]
	}
	if strings.HasPrefix(s, "-") {
		return s[1:]
	}
	return s
}

// Rewrite replaces the channel-ID segment of every internal link in the
// message with the bare form of targetChatID, both in plain text and in
// text_link entity URLs, and relabels internal links with linkText when the
// visible label differs. The message-number segment is never touched.
//
// Entity offsets and lengths are UTF-16 code units (Telegram convention);
// all splicing happens in that space so offsets stay exact around non-BMP
// characters. Rewriting is idempotent: a second pass against the same target
// produces no change.
func Rewrite(text string, entities []models.MessageEntity, targetChatID int64, linkText string) Result {
	bare := BareChannelID(targetChatID)
	out := append([]models.MessageEntity(nil), entities...)
	changed := false
	links := 0

	// Entity URLs first: no text change, offsets stay put.
	for i := range out {
		if out[i].Type != models.MessageEntityTypeTextLink || out[i].URL == "" {
			continue
		}
		if newURL, ok := rewriteURL(out[i].URL, bare); ok && newURL != out[i].URL {
			out[i].URL = newURL
			changed = true
			links++
		}
	}

	u := utf16.Encode([]rune(text))

	// Plain-text occurrences, back to front so earlier offsets stay valid.
	matches := linkPattern.FindAllStringIndex(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		a, b := matches[i][0], matches[i][1]
		old := text[a:b]
		newURL, ok := rewriteURL(old, bare)
		if !ok || newURL == old {
			continue
		}
		// The URL is ASCII, so its byte length equals its UTF-16 length.
		start := u16Len(text[:a])
		u = splice(u, start, start+len(old), utf16.Encode([]rune(newURL)))
		shiftEntities(out, start, len(old), len(newURL)-len(old), -1)
		changed = true
		links++
	}

	// Visible labels of internal links, back to front by offset.
	if linkText != "" {
		repl := utf16.Encode([]rune(linkText))
		order := make([]int, 0, len(out))
		for i := range out {
			if out[i].Type == models.MessageEntityTypeTextLink && entityLinkPattern.MatchString(out[i].URL) {
				order = append(order, i)
			}
		}
		sort.Slice(order, func(a, b int) bool { return out[order[a]].Offset > out[order[b]].Offset })

		for _, idx := range order {
			e := &out[idx]
			if e.Offset < 0 || e.Offset+e.Length > len(u) {
				continue
			}
			label := string(utf16.Decode(u[e.Offset : e.Offset+e.Length]))
			if label == linkText {
				continue
			}
			u = splice(u, e.Offset, e.Offset+e.Length, repl)
			shiftEntities(out, e.Offset, e.Length, len(repl)-e.Length, idx)
			e.Length = len(repl)
			changed = true
		}
	}

	if !changed {
		return Result{Text: text, Entities: entities}
	}
	return Result{
		Text:     string(utf16.Decode(u)),
		Entities: out,
		Changed:  true,
		Links:    links,
	}
}

// rewriteURL rebuilds an internal link against the bare target channel ID,
// preserving the message-number segment and any trailing part of the URL.
func rewriteURL(url, bare string) (string, bool) {
	m := entityLinkPattern.FindStringSubmatchIndex(url)
	if m == nil {
		return "", false
	}
	return "https://t.me/c/" + bare + "/" + url[m[4]:m[5]] + url[m[1]:], true
}

// shiftEntities recomputes offsets after the segment [start, start+oldLen)
// changed length by delta. Entities past the segment shift; entities fully
// covering it stretch; the entity at index skip is left to the caller.
func shiftEntities(entities []models.MessageEntity, start, oldLen, delta, skip int) {
	if delta == 0 {
		return
	}
	end := start + oldLen
	for i := range entities {
		if i == skip {
			continue
		}
		e := &entities[i]
		switch {
		case e.Offset >= end:
			e.Offset += delta
		case e.Offset <= start && e.Offset+e.Length >= end:
			e.Length += delta
		}
	}
}

func splice(u []uint16, start, end int, repl []uint16) []uint16 {
	out := make([]uint16, 0, len(u)-(end-start)+len(repl))
	out = append(out, u[:start]...)
	out = append(out, repl...)
	out = append(out, u[end:]...)
	return out
}

func u16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
