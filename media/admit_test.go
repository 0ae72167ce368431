package media

import (
	"errors"
	"testing"

	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
)

func TestAdmit(t *testing.T) {
	settings := database.ChannelSettings{
		AutoIndex:        true,
		FileTypesAllowed: []string{"video", "document"},
		MaxFileSize:      1000,
	}
	limits := config.MediaConfig{
		MaxFileSize:       800,
		AllowedExtensions: []string{"mkv", "pdf"},
	}
	tests := []struct {
		name string
		file database.MediaFile
		want error
	}{
		{"allowed", database.MediaFile{FileName: "a.mkv", FileType: "video", FileSize: 10}, nil},
		{"upper case extension", database.MediaFile{FileName: "a.MKV", FileType: "video", FileSize: 10}, nil},
		{"no extension", database.MediaFile{FileName: "README", FileType: "document", FileSize: 10}, nil},
		{"type", database.MediaFile{FileName: "a.mp3", FileType: "audio", FileSize: 10}, ErrTypeNotAllowed},
		{"channel size", database.MediaFile{FileName: "a.mkv", FileType: "video", FileSize: 1001}, ErrTooLarge},
		{"global size", database.MediaFile{FileName: "a.mkv", FileType: "video", FileSize: 900}, ErrTooLarge},
		{"extension", database.MediaFile{FileName: "a.exe", FileType: "document", FileSize: 10}, ErrExtensionNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Admit(settings, limits, tt.file); !errors.Is(err, tt.want) {
				t.Fatalf("Admit = %v, want %v", err, tt.want)
			}
		})
	}
}
