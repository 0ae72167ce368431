package channel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/filetype"
	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson"
)

// SettingsPatch holds the settings an admin wants to change. Nil fields
// are left as stored.
type SettingsPatch struct {
	AutoIndex        *bool    `mapstructure:"auto_index"`
	AllowDuplicates  *bool    `mapstructure:"allow_duplicates"`
	FileTypesAllowed []string `mapstructure:"file_types_allowed"`
	MaxFileSize      *int64   `mapstructure:"max_file_size"`
}

// ParseSettings decodes "key=value" arguments such as
// "auto_index=false max_file_size=1.5GB file_types_allowed=video,audio".
func ParseSettings(args []string) (SettingsPatch, error) {
	raw := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return SettingsPatch{}, fmt.Errorf("expected key=value, got %q", arg)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "file_types_allowed":
			types := make([]string, 0)
			for _, t := range strings.Split(value, ",") {
				if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
					types = append(types, t)
				}
			}
			raw[key] = types
		case "max_file_size":
			size, err := humanize.ParseBytes(value)
			if err != nil {
				return SettingsPatch{}, fmt.Errorf("invalid max_file_size %q: %w", value, err)
			}
			raw[key] = int64(size)
		default:
			raw[key] = value
		}
	}

	var patch SettingsPatch
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &patch,
	})
	if err != nil {
		return SettingsPatch{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return SettingsPatch{}, err
	}
	return patch, nil
}

func (p SettingsPatch) Empty() bool {
	return p.AutoIndex == nil && p.AllowDuplicates == nil && p.FileTypesAllowed == nil && p.MaxFileSize == nil
}

func (p SettingsPatch) Validate() error {
	if p.Empty() {
		return errors.New("no settings to update")
	}
	if p.FileTypesAllowed != nil {
		if len(p.FileTypesAllowed) == 0 {
			return errors.New("file_types_allowed must not be empty")
		}
		for _, t := range p.FileTypesAllowed {
			if _, err := filetype.ParseFileType(t); err != nil {
				return fmt.Errorf("file_types_allowed: %w", err)
			}
		}
	}
	if p.MaxFileSize != nil && *p.MaxFileSize <= 0 {
		return errors.New("max_file_size must be positive")
	}
	return nil
}

func (p SettingsPatch) fields() bson.M {
	set := bson.M{}
	if p.AutoIndex != nil {
		set["auto_index"] = *p.AutoIndex
	}
	if p.AllowDuplicates != nil {
		set["allow_duplicates"] = *p.AllowDuplicates
	}
	if p.FileTypesAllowed != nil {
		set["file_types_allowed"] = p.FileTypesAllowed
	}
	if p.MaxFileSize != nil {
		set["max_file_size"] = *p.MaxFileSize
	}
	return set
}
