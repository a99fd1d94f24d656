package commands

import (
	"context"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/asyncroom/acr/internal/log"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be
// executed should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global
// configuration for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	ConfigPath string
	ServerURL  string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	acrHome := filepath.Join(homedir.HomeDir(), ".acr")
	app.Flag("db-path", "Path to the SQLite database file ('memory' for an in-memory store).").Envar("ACR_DB_PATH").Default(filepath.Join(acrHome, "acr.db")).StringVar(&c.DBPath)
	app.Flag("config", "Path to the YAML config file.").Envar("ACR_CONFIG").Default(filepath.Join(acrHome, "config.yaml")).StringVar(&c.ConfigPath)
	app.Flag("server", "Classroom backend URL, overrides the config file.").Envar("ACR_SERVER_URL").StringVar(&c.ServerURL)

	return c
}
