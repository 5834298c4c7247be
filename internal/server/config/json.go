package config

import (
	"encoding/json"
	"os"

	"github.com/jpcdigital/ebookpay/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, non-empty fields are copied into the runtime
// Config struct.
type JsonConfig struct {
	EndpointAddr    string   `json:"endpoint_addr"`
	StripeSecretKey string   `json:"stripe_secret_key"`
	Currency        string   `json:"currency"`
	PublicBaseURL   string   `json:"public_base_url"`
	AllowedOrigins  []string `json:"allowed_origins"`
	AssetBackend    string   `json:"asset_backend"`
	EbookPath       string   `json:"ebook_path"`
	DownloadName    string   `json:"download_name"`
	S3RootUser      string   `json:"s3_root_user"`
	S3RootPassword  string   `json:"s3_root_password"`
	S3Bucket        string   `json:"s3_bucket"`
	S3Key           string   `json:"s3_key"`
	S3Region        string   `json:"s3_region"`
	S3BaseEndpoint  string   `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flag into the provided Config. When the flag is absent nothing
// is loaded. An unreadable or malformed file panics: the process cannot run
// with a config the operator asked for but that cannot be honored.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.StripeSecretKey != "" {
		config.StripeSecretKey = c.StripeSecretKey
	}
	if c.Currency != "" {
		config.Currency = c.Currency
	}
	if c.PublicBaseURL != "" {
		config.PublicBaseURL = c.PublicBaseURL
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.AssetBackend != "" {
		config.AssetBackend = c.AssetBackend
	}
	if c.EbookPath != "" {
		config.EbookPath = c.EbookPath
	}
	if c.DownloadName != "" {
		config.DownloadName = c.DownloadName
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Key != "" {
		config.S3Key = c.S3Key
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
