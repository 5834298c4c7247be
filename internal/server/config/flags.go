package config

import (
	"flag"
	"os"
	"strings"

	"github.com/jpcdigital/ebookpay/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-k string   Stripe secret key
//	-o string   allowed origins, comma separated
//	-l string   public base URL
//	-m string   asset backend ("local" or "s3")
//	-f string   e-book file path (local backend)
//	-n string   download filename presented to the client
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-y string   S3 object key
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// os.Args is first filtered to the flags handled here using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-k", "-o", "-l", "-m", "-f", "-n", "-u", "-p", "-b", "-y", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.StripeSecretKey, "k", config.StripeSecretKey, "stripe secret key")
	fs.StringVar(&config.PublicBaseURL, "l", config.PublicBaseURL, "public base URL")
	fs.StringVar(&config.AssetBackend, "m", config.AssetBackend, "asset backend (local or s3)")
	fs.StringVar(&config.EbookPath, "f", config.EbookPath, "e-book file path")
	fs.StringVar(&config.DownloadName, "n", config.DownloadName, "download filename")

	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed origins, comma separated")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Key, "y", config.S3Key, "S3 object key")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AllowedOrigins = SplitOrigins(*origins)
}
