package domain

import "time"

// DateLayout is the on-disk form of the settings date fields.
const DateLayout = "2006-01-02"

// Settings is the runtime-configurable record the pipeline reads.
type Settings struct {
	DetectionText string `json:"detection_text"`
	LinkText      string `json:"link_text"`
	CreatedAt     string `json:"created_at"`
	LastUpdated   string `json:"last_updated"`
}

// Default returns the record written on first run.
func Default(now time.Time) Settings {
	date := now.Format(DateLayout)
	return Settings{
		DetectionText: "▶️加入会员观看完整版",
		LinkText:      "观看完整版",
		CreatedAt:     date,
		LastUpdated:   date,
	}
}
