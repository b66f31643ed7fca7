package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"simple", "voice.m4a", ".m4a"},
		{"multiple dots", "diary.2026.10.wav", ".wav"},
		{"no extension", "clip", ".m4a"},
		{"trailing dot", "clip.", "."},
		{"dotfile", ".hidden", ".hidden"},
		{"empty", "", ".m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.fileName))
		})
	}
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t,
		"uploads/voice2024-01-01/0b7c6f4e-5d1a-4f0e-9c0d-3a2b1c0d9e8f.mp3",
		ObjectKey("song.mp3", now, "0b7c6f4e-5d1a-4f0e-9c0d-3a2b1c0d9e8f"),
	)
	assert.Equal(t, "uploads/voice2024-01-01/id.m4a", ObjectKey("clip", now, "id"))
}
