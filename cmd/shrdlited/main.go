/*
Shrdlited starts a shrdlite server and begins listening for new
connections.

Usage:

	shrdlited [flags]
	shrdlited [flags] -l [[ADDRESS]:PORT]

Once started, the shrdlite server listens for HTTP requests and responds
to them using a REST protocol at /api/v1. By default it listens on
localhost:8080; this can be changed with the --listen/-l flag or the
SHRDLITE_LISTEN_ADDRESS environment variable.

If a JWT token secret is not given, one is automatically generated and
seeded from crypto/rand. As a consequence, in this mode of operation all
tokens become invalid as soon as the server shuts down. This is suitable
for testing but must be given via flag, environment variable, or config
file when running in production.

The flags are:

	-v, --version
		Give the current version of the shrdlite server and exit.

	-c, --config FILE
		Load server configuration from the given TOML file.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or
		:PORT format.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of
		inmem or sqlite; sqlite requires the path to a data directory,
		e.g. sqlite:path/to/db_dir.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/dekarrin/shrdlite/config"
	"github.com/dekarrin/shrdlite/internal/shrdlog"
	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "SHRDLITE_LISTEN_ADDRESS"
	EnvSecret = "SHRDLITE_TOKEN_SECRET"
	EnvDB     = "SHRDLITE_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the shrdlite server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load server configuration from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

var log = shrdlog.New("shrdlited")

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (shrdlite v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %s\n", err.Error())
		os.Exit(1)
	}

	if listenAddr := os.Getenv(EnvListen); listenAddr != "" {
		cfg.Server.ListenAddress = listenAddr
	}
	if pflag.Lookup("listen").Changed {
		cfg.Server.ListenAddress = *flagListen
	}

	if dbConnStr := os.Getenv(EnvDB); dbConnStr != "" {
		db, err := config.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
		cfg.Server.DB = db
	}
	if pflag.Lookup("db").Changed {
		db, err := config.ParseDBConnString(*flagDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
		cfg.Server.DB = db
	}

	var tokSecret []byte
	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}
	if tokSecStr == "" {
		tokSecStr = cfg.Server.TokenSecret
	}
	if tokSecStr != "" {
		tokSecret = []byte(tokSecStr)
		for len(tokSecret) < config.MinSecretSize {
			doubled := make([]byte, len(tokSecret)*2)
			copy(doubled, tokSecret)
			copy(doubled[len(tokSecret):], tokSecret)
			tokSecret = doubled
		}
		if len(tokSecret) > config.MaxSecretSize {
			tokSecret = tokSecret[:config.MaxSecretSize]
		}
	} else {
		tokSecret = make([]byte, config.MaxSecretSize)
		if _, err := rand.Read(tokSecret); err != nil {
			fmt.Fprintf(os.Stderr, "could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		log.Warn("using generated token secret; all tokens issued will become invalid at shutdown")
	}

	db, err := cfg.Server.DB.Connect()
	if err != nil {
		log.Error("could not connect to database: %s", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(tokSecret, db, cfg.Server.UnauthDelay())

	log.Info("starting shrdlite server %s on %s...", version.ServerCurrent, cfg.Server.ListenAddress)
	if err := srv.ServeForever(cfg.Server.ListenAddress); err != nil {
		log.Error("server exited: %s", err.Error())
		os.Exit(1)
	}
}
