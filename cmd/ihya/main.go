// Command ihya serves the bilingual Ihya reader API and builds its static data.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ghazali-project/ihya/pkg/config"
	"github.com/ghazali-project/ihya/pkg/db"
	"github.com/ghazali-project/ihya/pkg/dictionary"
	"github.com/ghazali-project/ihya/pkg/ingest"
	"github.com/ghazali-project/ihya/pkg/logging"
	"github.com/ghazali-project/ihya/pkg/quran"
	"github.com/ghazali-project/ihya/pkg/reader"
	"github.com/ghazali-project/ihya/pkg/server"
)

// Globals are shared by every command.
type Globals struct {
	Config string `name:"config" short:"c" help:"Path to config.yaml (defaults to CONFIG_PATH or ./config.yaml)" type:"path"`

	Stdout io.Writer `kong:"-"`
}

func (g *Globals) load() (*config.Config, *slog.Logger, error) {
	path := g.Config
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func (g *Globals) out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Serve      ServeCmd      `cmd:"" help:"Start the HTTP API server"`
	Lookup     LookupCmd     `cmd:"" help:"Look a word up in the dictionary"`
	BuildIndex BuildIndexCmd `cmd:"" name:"build-index" help:"Build the monolithic dictionary index from a Lisan export"`
	Shard      ShardCmd      `cmd:"" help:"Split a dictionary index into per-letter shards"`
	FetchDict  FetchDictCmd  `cmd:"" name:"fetch-dict" help:"Download the dictionary shard bundle if it is missing"`
	ImportDict ImportDictCmd `cmd:"" name:"import-dict" help:"Import a Lisan export into the SQLite lexicon"`
	Align      AlignCmd      `cmd:"" help:"Align English translation pages with the Arabic books"`
}

// ServeCmd starts the API server.
type ServeCmd struct {
	Port int `help:"Override the configured port"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Dictionary.Mode == config.ModeSharded && cfg.Dictionary.BundleURL != "" {
		if err := dictionary.EnsureDictionary(ctx, cfg.Dictionary.ShardDir, cfg.Dictionary.BundleURL); err != nil {
			logger.Warn("dictionary bundle unavailable, lookups will miss", slog.Any("error", err))
		}
	}

	store, cache, closer, err := server.OpenStore(cfg.Dictionary, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	index, err := quran.LoadIndex(cfg.Content.QuranIndex)
	if err != nil {
		logger.Warn("quran index unavailable", slog.String("path", cfg.Content.QuranIndex), slog.Any("error", err))
		index = quran.NewIndex()
	}
	english, err := quran.LoadEnglish(cfg.Content.QuranEnglish)
	if err != nil {
		logger.Warn("quran translation unavailable", slog.String("path", cfg.Content.QuranEnglish), slog.Any("error", err))
	}

	lib := reader.NewLibrary(cfg.Content.TextDir, cfg.Content.TranslationDir, cfg.Content.LecturesIndex, logger)
	h := server.NewHandler(dictionary.NewService(store, logger), lib, index, english, logger)
	h.Cache = cache

	return server.New(cfg, h, logger).Run(ctx)
}

// LookupCmd prints the definition of a word.
type LookupCmd struct {
	Word string `arg:"" help:"Arabic word to look up"`
}

func (c *LookupCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	store, _, closer, err := server.OpenStore(cfg.Dictionary, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	res, err := dictionary.NewService(store, logger).Lookup(context.Background(), c.Word)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintf(g.out(), "%s: not found\n", res.Term)
		return nil
	}
	if res.Headword != res.Term {
		fmt.Fprintf(g.out(), "%s (%s):\n%s\n", res.Term, res.Headword, res.Definition)
		return nil
	}
	fmt.Fprintf(g.out(), "%s:\n%s\n", res.Term, res.Definition)
	return nil
}

// BuildIndexCmd writes the monolithic index.
type BuildIndexCmd struct {
	Source string `arg:"" help:"Lisan al-Arab JSON export" type:"existingfile"`
	Out    string `help:"Output index file" default:"public/dictionary_index.json" type:"path"`
}

func (c *BuildIndexCmd) Run(g *Globals) error {
	entries, err := dictionary.LoadLisan(c.Source)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	index := dictionary.BuildIndex(entries)
	if err := dictionary.WriteIndex(c.Out, index); err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Indexed %d headwords from %d entries into %s\n", len(index), len(entries), c.Out)
	return nil
}

// ShardCmd splits an index into shard files.
type ShardCmd struct {
	Index string `arg:"" help:"Monolithic index file" type:"existingfile"`
	Out   string `help:"Output shard directory" default:"public/dictionary" type:"path"`
}

func (c *ShardCmd) Run(g *Globals) error {
	index, err := dictionary.ReadIndex(c.Index)
	if err != nil {
		return err
	}
	manifest, err := dictionary.WriteShards(c.Out, index)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Wrote %d shards for %d headwords into %s\n", len(manifest), len(index), c.Out)
	return nil
}

// FetchDictCmd downloads the shard bundle.
type FetchDictCmd struct {
	URL string `name:"url" help:"Bundle URL (defaults to dictionary.bundle_url)"`
	Dir string `help:"Shard directory (defaults to dictionary.shard_dir)" type:"path"`
}

func (c *FetchDictCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	url, dir := cfg.Dictionary.BundleURL, cfg.Dictionary.ShardDir
	if c.URL != "" {
		url = c.URL
	}
	if c.Dir != "" {
		dir = c.Dir
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := dictionary.EnsureDictionary(ctx, dir, url); err != nil {
		return err
	}
	manifest, err := dictionary.ReadManifest(dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "Dictionary ready in %s (%d shards)\n", dir, len(manifest))
	return nil
}

// ImportDictCmd loads a Lisan export into SQLite.
type ImportDictCmd struct {
	Source  string `arg:"" help:"Lisan al-Arab JSON export" type:"existingfile"`
	DB      string `name:"db" help:"SQLite database (defaults to dictionary.database_path)" type:"path"`
	Workers int    `help:"Normalisation workers" default:"4"`
	Batch   int    `help:"Headwords per transaction" default:"500"`
}

func (c *ImportDictCmd) Run(g *Globals) error {
	path := c.DB
	logger := slog.Default()
	if path == "" {
		cfg, l, err := g.load()
		if err != nil {
			return err
		}
		path, logger = cfg.Dictionary.DatabasePath, l
	}

	conn, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ig := ingest.NewLexiconIngester(conn)
	ig.Workers, ig.BatchSize, ig.Logger = c.Workers, c.Batch, logger
	stats, err := ig.ImportFile(ctx, c.Source)
	if err != nil {
		return err
	}
	if stats.Skipped > 0 && stats.Written == 0 {
		fmt.Fprintf(g.out(), "%s already imported (%d headwords)\n", c.Source, stats.Total)
		return nil
	}
	fmt.Fprintf(g.out(), "Imported %d of %d headwords into %s\n", stats.Written, stats.Total, path)
	return nil
}

// AlignCmd writes translation files.
type AlignCmd struct {
	English string `help:"Directory of English translation pages" required:"" type:"existingdir"`
	Arabic  string `help:"Directory of processed Arabic books" default:"data/processed" type:"path"`
	Out     string `help:"Output directory for translation files" default:"data/translations" type:"path"`
	Workers int    `help:"Parallel books" default:"4"`
}

func (c *AlignCmd) Run(g *Globals) error {
	jobs, err := reader.PlanAlignment(c.English, c.Arabic, c.Out)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no translation pages found in %s", c.English)
	}
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	aligner := &reader.Aligner{Workers: c.Workers, Logger: slog.Default()}
	results, err := aligner.AlignAll(ctx, jobs)
	if err != nil {
		return err
	}

	var aligned, skipped, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(g.out(), "book %d (%s): %v\n", r.Job.Book, filepath.Base(r.Job.EnglishPath), r.Err)
		case r.Skipped:
			skipped++
		default:
			aligned++
		}
	}
	fmt.Fprintf(g.out(), "Aligned %d books, skipped %d, failed %d\n", aligned, skipped, failed)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ihya"),
		kong.Description("Ihya 'Ulum al-Din bilingual reader"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
