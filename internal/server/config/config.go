// Package config handles configuration for the server component, including
// defaults, environment variables, an optional JSON overlay, and
// command-line flags.
package config

// Config holds runtime settings for the e-book payment server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - StripeSecretKey: secret API key for the payment processor.
//   - Currency: ISO currency code charged for the product.
//   - PublicBaseURL: external base URL embedded in intent metadata as the
//     success URL. When empty it is derived from the incoming request.
//   - AllowedOrigins: exact-match CORS allow-list.
//   - AssetBackend: where the e-book lives, "local" or "s3".
//   - EbookPath: on-disk path of the e-book (local backend).
//   - DownloadName: filename presented to the downloading client,
//     independent of the stored name.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Key / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	EndpointAddr    string
	StripeSecretKey string
	Currency        string
	PublicBaseURL   string
	AllowedOrigins  []string

	AssetBackend string
	EbookPath    string
	DownloadName string

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Key          string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials are insecure and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3001"
	c.Currency = "eur"
	c.AllowedOrigins = []string{
		"https://donation-jpc.com",
		"https://www.donation-jpc.com",
		"http://localhost:3000",
	}
	c.AssetBackend = "local"
	c.EbookPath = "ebooks/um-presente.pdf"
	c.DownloadName = "Um-Presente.pdf"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "ebooks"
	c.S3Key = "um-presente.pdf"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, from an optional JSON file, and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
