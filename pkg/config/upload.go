package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

var UploadContexts = map[string]UploadConfig{
	"avatar": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		MaxSizeMB:        5,
		PathPrefix:       "avatars",
	},
}
