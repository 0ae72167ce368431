package media

import (
	"errors"
	"path/filepath"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
)

var (
	ErrTypeNotAllowed      = errors.New("file type not allowed")
	ErrTooLarge            = errors.New("file exceeds size limit")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrDuplicate           = errors.New("duplicate file")
)

// Admit checks a file against the channel settings and the global media
// limits. Files without an extension skip the extension check.
func Admit(settings database.ChannelSettings, limits config.MediaConfig, f database.MediaFile) error {
	if !slice.Contain(settings.FileTypesAllowed, f.FileType) {
		return ErrTypeNotAllowed
	}
	if settings.MaxFileSize > 0 && f.FileSize > settings.MaxFileSize {
		return ErrTooLarge
	}
	if limits.MaxFileSize > 0 && f.FileSize > limits.MaxFileSize {
		return ErrTooLarge
	}
	if ext := filepath.Ext(f.FileName); ext != "" && len(limits.AllowedExtensions) > 0 && !limits.ExtensionAllowed(ext) {
		return ErrExtensionNotAllowed
	}
	return nil
}
