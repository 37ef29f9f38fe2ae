package main

import (
	"fmt"
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/gmarchetti/thirtyseven/backpack"
	"github.com/gmarchetti/thirtyseven/highrise"
	"github.com/gmarchetti/thirtyseven/lookup"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	hr *highrise.Client
	bp *backpack.Client
)

type config struct {
	HighriseAccount string `validate:"required_with=HighriseToken"`
	HighriseToken   string `validate:"required_with=HighriseAccount"`
	BackpackAccount string `validate:"required_with=BackpackToken"`
	BackpackToken   string `validate:"required_with=BackpackAccount"`
}

func main() {
	home := mustHomeDir()
	libDir := path.Join(home, "lib/thirtyseven")
	cfg := mustLoadConfig(path.Join(libDir, "env"))
	wireLogFile := path.Join(libDir, "wire.log")
	mustCreateClients(cfg, wireLogFile)

	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "lookup":
		if len(os.Args) < 3 {
			usage()
		}
		runLookup(strings.Join(os.Args[2:], " "))
	case "pages":
		runPages()
	case "remind":
		if len(os.Args) < 3 {
			usage()
		}
		runRemind(strings.Join(os.Args[2:], " "))
	case "acme":
		newRemindersWindow()
		// The program will be terminated when the last acme window owned by this process is
		// deleted.
		select {}
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s lookup PATTERN | pages | remind TEXT... | acme\n", path.Base(os.Args[0]))
	os.Exit(2)
}

func mustHomeDir() string {
	u, err := user.Current()
	if err != nil {
		log.WithField("cause", err).Fatal("Could not get current user")
	}
	return u.HomeDir
}

func mustLoadConfig(envFile string) config {
	logEntry := log.WithField("path", envFile)
	fi, err := os.Stat(envFile)
	if err != nil {
		logEntry.WithField("cause", err).Fatal("Could not check permissions")
	}
	if fi.Mode()&0077 != 0 {
		logEntry.WithFields(log.Fields{
			"got":  fmt.Sprintf("%#o", fi.Mode()),
			"want": fmt.Sprintf("%#o", fi.Mode()&0700),
		}).Fatal("Stricter permissions required")
	}
	if err := godotenv.Load(envFile); err != nil {
		logEntry.WithField("cause", err).Fatal("Could not load configuration")
	}
	cfg := config{
		HighriseAccount: os.Getenv("HIGHRISE_ACCOUNT"),
		HighriseToken:   os.Getenv("HIGHRISE_TOKEN"),
		BackpackAccount: os.Getenv("BACKPACK_ACCOUNT"),
		BackpackToken:   os.Getenv("BACKPACK_TOKEN"),
	}
	if err := validator.New().Struct(cfg); err != nil {
		logEntry.WithField("cause", err).Fatal("Invalid configuration")
	}
	if cfg.HighriseAccount == "" && cfg.BackpackAccount == "" {
		logEntry.Fatal("Neither Highrise nor Backpack is configured")
	}
	return cfg
}

func mustCreateClients(cfg config, wireLogFile string) {
	var err error
	if cfg.HighriseAccount != "" {
		hr, err = highrise.NewClient(cfg.HighriseAccount, cfg.HighriseToken, highrise.WithWireLog(wireLogFile))
		if err != nil {
			log.WithField("cause", err).Fatal("Could not create Highrise client")
		}
	}
	if cfg.BackpackAccount != "" {
		bp, err = backpack.NewClient(cfg.BackpackAccount, cfg.BackpackToken, backpack.WithWireLog(wireLogFile))
		if err != nil {
			log.WithField("cause", err).Fatal("Could not create Backpack client")
		}
	}
}

func mustHighrise() *highrise.Client {
	if hr == nil {
		log.Fatal("Highrise is not configured, add HIGHRISE_ACCOUNT and HIGHRISE_TOKEN")
	}
	return hr
}

func mustBackpack() *backpack.Client {
	if bp == nil {
		log.Fatal("Backpack is not configured, add BACKPACK_ACCOUNT and BACKPACK_TOKEN")
	}
	return bp
}

func runLookup(pattern string) {
	results, err := lookup.Search(mustHighrise(), []lookup.Constraint{{Field: lookup.Name, Pattern: pattern}}, nil)
	if err != nil {
		log.WithField("cause", err).Fatal("Lookup failed")
	}
	printResults(os.Stdout, results)
}

func runPages() {
	pages, err := mustBackpack().ListPages()
	if err != nil {
		log.WithField("cause", err).Fatal("Could not list pages")
	}
	printPages(os.Stdout, pages)
}

func runRemind(content string) {
	rem, err := mustBackpack().CreateReminder(content)
	if err != nil {
		log.WithField("cause", err).Fatal("Could not create reminder")
	}
	printReminder(os.Stdout, rem)
}
