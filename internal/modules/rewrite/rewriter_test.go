package rewrite

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestBareChannelID(t *testing.T) {
	tests := []struct {
		name   string
		chatID int64
		want   string
	}{
		{name: "supergroup prefix stripped", chatID: -1001234567890, want: "1234567890"},
		{name: "plain negative loses sign", chatID: -12345, want: "12345"},
		{name: "positive unchanged", chatID: 777, want: "777"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BareChannelID(tt.chatID); got != tt.want {
				t.Errorf("BareChannelID(%d) = %q, want %q", tt.chatID, got, tt.want)
			}
		})
	}
}

func TestRewritePlainText(t *testing.T) {
	text := "watch here: https://t.me/c/1234567890/42 now"
	res := Rewrite(text, nil, -1009999999999, "")

	if !res.Changed {
		t.Fatal("expected Changed to be true")
	}
	want := "watch here: https://t.me/c/9999999999/42 now"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if res.Links != 1 {
		t.Errorf("Links = %d, want 1", res.Links)
	}
}

func TestRewriteKeepsMessageNumber(t *testing.T) {
	text := "https://t.me/c/111/9999999999"
	res := Rewrite(text, nil, -1002222222222, "")

	want := "https://t.me/c/2222222222/9999999999"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestRewriteMultipleLinks(t *testing.T) {
	text := "a https://t.me/c/11/1 b https://t.me/c/22/2 c"
	res := Rewrite(text, nil, -10033, "")

	want := "a https://t.me/c/33/1 b https://t.me/c/33/2 c"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if res.Links != 2 {
		t.Errorf("Links = %d, want 2", res.Links)
	}
}

func TestRewriteIgnoresPublicLinks(t *testing.T) {
	text := "see https://t.me/some_channel/42"
	res := Rewrite(text, nil, -1001234567890, "")

	if res.Changed {
		t.Errorf("public link should not be rewritten, got %q", res.Text)
	}
	if res.Text != text {
		t.Errorf("Text = %q, want unchanged input", res.Text)
	}
}

func TestRewriteNoMatchEchoesInput(t *testing.T) {
	entities := []models.MessageEntity{{Type: models.MessageEntityTypeBold, Offset: 0, Length: 5}}
	res := Rewrite("hello world", entities, -100123, "")

	if res.Changed {
		t.Error("expected Changed to be false")
	}
	if res.Text != "hello world" {
		t.Errorf("Text = %q, want input", res.Text)
	}
	if len(res.Entities) != 1 || res.Entities[0].Length != 5 {
		t.Errorf("entities changed: %+v", res.Entities)
	}
}

func TestRewriteIdempotent(t *testing.T) {
	text := "▶️ https://t.me/c/1234567890/42"
	entities := []models.MessageEntity{{
		Type:   models.MessageEntityTypeTextLink,
		Offset: 0,
		Length: 2,
		URL:    "https://t.me/c/1234567890/7",
	}}

	first := Rewrite(text, entities, -1005555555555, "")
	if !first.Changed {
		t.Fatal("first pass should change the message")
	}

	second := Rewrite(first.Text, first.Entities, -1005555555555, "")
	if second.Changed {
		t.Errorf("second pass should be a no-op, got %q", second.Text)
	}
}

func TestRewriteEntityURL(t *testing.T) {
	entities := []models.MessageEntity{{
		Type:   models.MessageEntityTypeTextLink,
		Offset: 0,
		Length: 4,
		URL:    "https://t.me/c/111/55",
	}}
	res := Rewrite("link", entities, -100999, "")

	if !res.Changed {
		t.Fatal("expected Changed to be true")
	}
	if res.Text != "link" {
		t.Errorf("Text = %q, want unchanged visible text", res.Text)
	}
	if res.Entities[0].URL != "https://t.me/c/999/55" {
		t.Errorf("URL = %q, want rewritten channel segment", res.Entities[0].URL)
	}
	if res.Links != 1 {
		t.Errorf("Links = %d, want 1", res.Links)
	}
}

func TestRewriteRelabelsInternalLink(t *testing.T) {
	// "AB" then a 3-unit label then "CD"; a bold entity follows the link.
	text := "AB看这里CD"
	entities := []models.MessageEntity{
		{Type: models.MessageEntityTypeTextLink, Offset: 2, Length: 3, URL: "https://t.me/c/1234567890/7"},
		{Type: models.MessageEntityTypeBold, Offset: 5, Length: 2},
	}

	res := Rewrite(text, entities, -1001234567890, "观看完整版")

	if !res.Changed {
		t.Fatal("expected Changed to be true")
	}
	if res.Text != "AB观看完整版CD" {
		t.Errorf("Text = %q, want relabeled link", res.Text)
	}
	if res.Entities[0].Length != 5 {
		t.Errorf("link entity length = %d, want 5", res.Entities[0].Length)
	}
	if res.Entities[1].Offset != 7 {
		t.Errorf("bold entity offset = %d, want 7", res.Entities[1].Offset)
	}
}

func TestRewriteRelabelSkipsMatchingLabel(t *testing.T) {
	text := "观看完整版"
	entities := []models.MessageEntity{{
		Type:   models.MessageEntityTypeTextLink,
		Offset: 0,
		Length: 5,
		URL:    "https://t.me/c/1234567890/7",
	}}

	res := Rewrite(text, entities, -1001234567890, "观看完整版")
	if res.Changed {
		t.Errorf("label already matches, expected no change, got %q", res.Text)
	}
}

func TestRewriteRelabelIgnoresExternalLinks(t *testing.T) {
	text := "click"
	entities := []models.MessageEntity{{
		Type:   models.MessageEntityTypeTextLink,
		Offset: 0,
		Length: 5,
		URL:    "https://example.com/page",
	}}

	res := Rewrite(text, entities, -100123, "观看完整版")
	if res.Changed {
		t.Errorf("external link label should stay, got %q", res.Text)
	}
}

func TestRewriteNonBMPOffsets(t *testing.T) {
	// The emoji is 2 UTF-16 units, so the link entity starts at offset 3.
	text := "😀 click"
	entities := []models.MessageEntity{{
		Type:   models.MessageEntityTypeTextLink,
		Offset: 3,
		Length: 5,
		URL:    "https://t.me/c/111/9",
	}}

	res := Rewrite(text, entities, -100222, "看这里")

	if res.Text != "😀 看这里" {
		t.Errorf("Text = %q, want %q", res.Text, "😀 看这里")
	}
	if res.Entities[0].Offset != 3 || res.Entities[0].Length != 3 {
		t.Errorf("entity = %+v, want offset 3 length 3", res.Entities[0])
	}
	if res.Entities[0].URL != "https://t.me/c/222/9" {
		t.Errorf("URL = %q, want rewritten channel segment", res.Entities[0].URL)
	}
}
