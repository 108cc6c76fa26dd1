package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gallery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	API     string
	Search  gallery.SearchService
	Objects gallery.ObjectWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   kong.ConfigFlag `help:"TOML file with flag defaults" env:"GALLERY_CONFIG"`
	DB       string          `help:"SQLite database path (default ~/.gallery/gallery.db)" env:"GALLERY_DB"`
	API      string          `help:"Use a remote gallery API instead of the local database" env:"GALLERY_API"`
	LogLevel string          `help:"Log level" default:"info" enum:"debug,info,warn,error" env:"GALLERY_LOG_LEVEL"`

	Serve       ServeCmd       `cmd:"" help:"Serve the JSON search API"`
	Explore     ExploreCmd     `cmd:"" help:"Browse the catalog interactively"`
	Search      SearchCmd      `cmd:"" help:"Run a search given as a location query string"`
	Departments DepartmentsCmd `cmd:"" help:"List departments"`
	Object      ObjectCmd      `cmd:"" help:"Show one object"`
	Import      ImportCmd      `cmd:"" help:"Import objects from a collection CSV export"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string        `help:"Listen address" default:":8080" env:"GALLERY_ADDR"`
	MaxConns  int           `help:"Maximum concurrent connections (0 for unlimited)" default:"256"`
	RateLimit float64       `help:"Requests per second allowed per client (0 disables)" default:"20"`
	Burst     int           `help:"Request burst allowed per client" default:"40"`
	CacheSize int           `help:"Cached searches and objects" default:"512"`
	CacheTTL  time.Duration `help:"How long search results stay cached" default:"5m"`
}

// ExploreCmd is the "explore" subcommand.
type ExploreCmd struct {
	Location string `arg:"" optional:"" help:"Starting location, e.g. 'q=monet&dept=European+Paintings'"`
	LinkBase string `help:"Base URL of shared links" default:"http://localhost:8080/"`
	LogFile  string `help:"Log file (default ~/.gallery/explore.log)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Location string `arg:"" optional:"" help:"Location query string, e.g. 'q=monet&page=1'"`
	JSON     bool   `help:"Print the raw result as JSON"`
}

// DepartmentsCmd is the "departments" subcommand.
type DepartmentsCmd struct{}

// ObjectCmd is the "object" subcommand.
type ObjectCmd struct {
	ID   int  `arg:"" help:"Object ID"`
	JSON bool `help:"Print the object as JSON"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path      string `arg:"" type:"existingfile" help:"CSV file to import"`
	BatchSize int    `help:"Objects written per transaction" default:"500"`
}
