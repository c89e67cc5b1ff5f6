package config

import (
	"path/filepath"
	"testing"
)

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{name: "empty", input: "", want: []int64{}},
		{name: "single", input: "123456", want: []int64{123456}},
		{name: "multiple", input: "1,2,3", want: []int64{1, 2, 3}},
		{name: "spaces", input: " 1 , 2 ", want: []int64{1, 2}},
		{name: "skips garbage", input: "1,abc,3", want: []int64{1, 3}},
		{name: "negative ids", input: "-100123,-100456", want: []int64{-100123, -100456}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAdminIDs(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseAdminIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseAdminIDs(%q)[%d] = %d, want %d", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{100, 200}}

	if !cfg.IsAdmin(100) {
		t.Error("IsAdmin(100) = false, want true")
	}
	if cfg.IsAdmin(300) {
		t.Error("IsAdmin(300) = true, want false")
	}

	empty := &Config{}
	if empty.IsAdmin(100) {
		t.Error("empty allow-list should admit nobody")
	}
}

func TestStorageFilePaths(t *testing.T) {
	cfg := &Config{StoragePath: "/var/lib/bot"}

	if got := cfg.ChannelsFile(); got != filepath.Join("/var/lib/bot", "channels.txt") {
		t.Errorf("ChannelsFile() = %q", got)
	}
	if got := cfg.SettingsFile(); got != filepath.Join("/var/lib/bot", "settings.json") {
		t.Errorf("SettingsFile() = %q", got)
	}
}

func TestParseAppEnv(t *testing.T) {
	tests := []struct {
		input   string
		want    AppEnv
		wantErr bool
	}{
		{input: "production", want: AppEnvProduction},
		{input: "LOCAL", want: AppEnvLocal},
		{input: "Development", want: AppEnvDevelopment},
		{input: "testing", want: AppEnvTesting},
		{input: "staging", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAppEnv(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAppEnv(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseAppEnv(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
