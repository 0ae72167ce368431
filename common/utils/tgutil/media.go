package tgutil

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gotd/td/tg"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/filetype"
)

// MediaInfo is what the catalog needs to know about an attached file.
type MediaInfo struct {
	DocumentID int64
	Name       string
	Type       filetype.FileType
	MimeType   string
	Size       int64
}

// GetMediaInfo extracts the file carried by a message. ok is false for
// media kinds that hold no file (polls, locations, web pages).
func GetMediaInfo(media tg.MessageMediaClass) (MediaInfo, bool) {
	switch v := media.(type) {
	case *tg.MessageMediaPhoto:
		p, ok := v.Photo.(*tg.Photo)
		if !ok {
			return MediaInfo{}, false
		}
		return MediaInfo{
			DocumentID: p.ID,
			Name:       fmt.Sprintf("%d.jpg", p.ID),
			Type:       filetype.Photo,
			MimeType:   "image/jpeg",
			Size:       largestPhotoSize(p.Sizes),
		}, true
	case *tg.MessageMediaDocument:
		doc, ok := v.Document.AsNotEmpty()
		if !ok {
			return MediaInfo{}, false
		}
		info := MediaInfo{
			DocumentID: doc.ID,
			MimeType:   doc.MimeType,
			Size:       doc.Size,
			Type:       typeFromMime(doc.MimeType),
		}
		for _, attr := range doc.Attributes {
			switch a := attr.(type) {
			case *tg.DocumentAttributeFilename:
				info.Name = a.FileName
			case *tg.DocumentAttributeVideo:
				info.Type = filetype.Video
			case *tg.DocumentAttributeAudio:
				info.Type = filetype.Audio
			}
		}
		if info.Name == "" {
			info.Name = fmt.Sprintf("%d%s", doc.ID, extensionFor(doc.MimeType))
		}
		return info, true
	}
	return MediaInfo{}, false
}

func typeFromMime(mime string) filetype.FileType {
	switch {
	case strings.HasPrefix(mime, "video/"):
		return filetype.Video
	case strings.HasPrefix(mime, "audio/"):
		return filetype.Audio
	case strings.HasPrefix(mime, "image/"):
		return filetype.Photo
	}
	return filetype.Document
}

// extensionFor returns the usual extension for a MIME type, with the dot,
// or "" when the type is unknown.
func extensionFor(mime string) string {
	if m := mimetype.Lookup(mime); m != nil {
		return m.Extension()
	}
	return ""
}

func largestPhotoSize(sizes []tg.PhotoSizeClass) int64 {
	var largest int64
	for _, s := range sizes {
		switch v := s.(type) {
		case *tg.PhotoSize:
			largest = max(largest, int64(v.Size))
		case *tg.PhotoSizeProgressive:
			for _, n := range v.Sizes {
				largest = max(largest, int64(n))
			}
		}
	}
	return largest
}
