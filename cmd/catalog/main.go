package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/krakend/catalog-search/internal/debounce"
	"github.com/krakend/catalog-search/internal/filter"
	"github.com/krakend/catalog-search/internal/render"
	"github.com/krakend/catalog-search/tools"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "catalog",
		Usage: "Filter a hierarchical catalog with free-text queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "Catalog JSON file (defaults to the data directory catalog, then the embedded sample)",
				EnvVars: []string{"CATALOG_SEARCH_FILE"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress progress logging",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Run one search and print the visible tree",
				ArgsUsage: "<words...>",
				Action:    queryCommand,
			},
			{
				Name:      "validate",
				Usage:     "Check a catalog file against the schema and the hierarchy rules",
				ArgsUsage: "<file>",
				Action:    validateCommand,
			},
			{
				Name:   "browse",
				Usage:  "Interactive terminal browser that filters as you type",
				Action: browseCommand,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Idle time after the last keystroke before searching",
						Value: debounce.DefaultDelay,
					},
				},
			},
		},
	}
}

// setupLogger keeps progress lines on stderr so stdout stays clean for results
func setupLogger(c *cli.Context) error {
	log.SetOutput(os.Stderr)
	if c.Bool("quiet") {
		log.SetOutput(io.Discard)
	}
	return nil
}

// openEngine loads the catalog named by --catalog, else the data directory
// catalog, else the embedded sample
func openEngine(c *cli.Context) (*filter.Engine, error) {
	if path := c.String("catalog"); path != "" {
		return tools.LoadCatalog(path)
	}

	if path := tools.DefaultCatalogPath(); fileExists(path) {
		engine, err := tools.LoadCatalog(path)
		if err == nil {
			return engine, nil
		}
		log.Printf("Warning: %v, using embedded catalog", err)
	}
	return tools.LoadEmbeddedCatalog()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func queryCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	query := strings.Join(c.Args().Slice(), " ")
	view, err := render.Search(engine, query)
	if err != nil {
		return err
	}

	fmt.Fprint(c.App.Writer, formatView(view, plainStyle))
	return nil
}

func validateCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("validate expects exactly one catalog file, got %d argument(s)", c.NArg())
	}

	path := c.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file '%s': %w", path, err)
	}

	output := tools.ValidateCatalogContent(data)
	w := c.App.Writer

	for _, e := range output.Errors {
		fmt.Fprintf(w, "error   %-22s %s %s\n", e.Code, e.Path, e.Message)
	}
	for _, warning := range output.Warnings {
		fmt.Fprintf(w, "warning %-22s %s\n", warning.Code, warning.Message)
	}
	fmt.Fprintln(w, output.Summary)

	if !output.Valid {
		return fmt.Errorf("%s is not a valid catalog", path)
	}
	return nil
}
