package filetype

//go:generate go-enum --values --names --noprefix --nocase

// FileType
/* ENUM(
video, audio, document, photo
) */
type FileType string
