package config

import (
	"os"
	"strings"
)

// parseEnv overlays Config fields from environment variables. Empty values
// are ignored so defaults survive a partially populated environment.
//
// Recognized variables:
//
//	PORT                 listen port (becomes ":<port>")
//	ADDRESS              full bind address, takes precedence over PORT
//	STRIPE_SECRET_KEY    processor secret key
//	CURRENCY             charge currency
//	PUBLIC_BASE_URL      external base URL for the success URL metadata
//	FRONTEND_ORIGINS     comma-separated CORS allow-list
//	ASSET_BACKEND        "local" or "s3"
//	EBOOK_PATH           on-disk e-book path
//	EBOOK_DOWNLOAD_NAME  attachment filename
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_KEY, S3_REGION,
//	S3_BASE_ENDPOINT     object storage settings
func parseEnv(config *Config) {
	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddr = ":" + v
	}
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		config.StripeSecretKey = v
	}
	if v := os.Getenv("CURRENCY"); v != "" {
		config.Currency = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		config.PublicBaseURL = v
	}
	if v := os.Getenv("FRONTEND_ORIGINS"); v != "" {
		config.AllowedOrigins = SplitOrigins(v)
	}
	if v := os.Getenv("ASSET_BACKEND"); v != "" {
		config.AssetBackend = v
	}
	if v := os.Getenv("EBOOK_PATH"); v != "" {
		config.EbookPath = v
	}
	if v := os.Getenv("EBOOK_DOWNLOAD_NAME"); v != "" {
		config.DownloadName = v
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_KEY"); v != "" {
		config.S3Key = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}

// SplitOrigins parses a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func SplitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
