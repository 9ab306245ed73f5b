package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/flagx"
)

// serverFlags lists every flag parseFlags understands; anything else in args
// (for example -c) is dropped before parsing.
var serverFlags = []string{
	"-a", "-g", "-d", "-s", "-alg", "-t", "-cost", "-rl", "-l",
	"-u", "-p", "-b", "-r", "-e",
}

// parseFlags overlays command-line flags onto config.
//
//	-a    string  HTTP bind address (":8080")
//	-g    string  gRPC bind address (":50051")
//	-d    string  PostgreSQL DSN
//	-s    string  HMAC secret key
//	-alg  string  token signing algorithm (HS256, HS384, HS512)
//	-t    int     access token validity, minutes
//	-cost int     bcrypt cost factor
//	-rl   int     login attempts per client per minute, 0 disables the limit
//	-l    string  log level
//	-u/-p string  S3 credentials
//	-b    string  S3 bucket
//	-r    string  S3 region
//	-e    string  S3 base endpoint
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.SigningAlgorithm, "alg", config.SigningAlgorithm, "token signing algorithm")

	validity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.IntVar(&config.BcryptCost, "cost", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.LoginRateLimitRPM, "rl", config.LoginRateLimitRPM, "login attempts per minute per client")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
		}
	})
	return nil
}
