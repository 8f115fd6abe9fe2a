// Command deckforge builds Commander decks from an owned-card collection.
//
// Subcommands:
//
//	build   assemble a deck for a commander from the stored collection
//	sync    download the Scryfall oracle_cards bulk data into the local cache
//	import  import a collection file (CSV or text list)
//	suggest rank upgrade candidates for a commander's deck
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/deckforge/deckforge/internal/bulk"
	"github.com/deckforge/deckforge/internal/cards"
	"github.com/deckforge/deckforge/internal/cards/scryfall"
	"github.com/deckforge/deckforge/internal/collection"
	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/deck"
	"github.com/deckforge/deckforge/internal/report"
	"github.com/deckforge/deckforge/internal/storage"
	"github.com/deckforge/deckforge/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cmdErr error
	switch os.Args[1] {
	case "build":
		cmdErr = runBuild(ctx, cfg, os.Args[2:])
	case "sync":
		cmdErr = runSync(ctx, cfg, os.Args[2:])
	case "import":
		cmdErr = runImport(ctx, cfg, os.Args[2:])
	case "suggest":
		cmdErr = runSuggest(ctx, cfg, os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("deckforge %s\n", version.GetVersion())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		log.Fatalf("Error: %v", cmdErr)
	}
}

func usage() {
	fmt.Println("Usage: deckforge <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  build   -commander <name> [-archetype a] [-power p] [-seed n] [-report]")
	fmt.Println("  sync")
	fmt.Println("  import  -file <path> [-watch]")
	fmt.Println("  suggest -commander <name> [-limit n]")
	fmt.Println("  version")
}

// openStorage opens the configured database and wraps it in a service.
func openStorage(cfg *config.Config) (*storage.DB, *storage.Service, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	dbCfg := storage.DefaultConfig(path)
	dbCfg.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return db, storage.NewService(db), nil
}

func runBuild(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	commander := fs.String("commander", "", "Commander name (required)")
	archetype := fs.String("archetype", cfg.Build.Archetype, "Deck archetype")
	power := fs.String("power", cfg.Build.Power, "Power level")
	playstyle := fs.String("playstyle", cfg.Build.Playstyle, "Playstyle adjustment")
	seed := fs.Int64("seed", 0, "Local-search seed (0 = entropy)")
	legality := fs.Bool("enforce-legality", cfg.Build.EnforceLegality, "Apply banlist and legality data")
	writeReport := fs.Bool("report", false, "Write an HTML deck report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *commander == "" {
		return fmt.Errorf("-commander is required")
	}

	db, svc, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	owned, err := svc.GetCollection(ctx)
	if err != nil {
		return err
	}

	resolver := cards.NewService(svc, scryfall.NewClient())
	builder := deck.NewBuilder(resolver, storage.NewPlanStore(db))
	builder.Progress = func(stage string, progress float64, message string) {
		log.Printf("[%s] %3.0f%% %s", stage, progress*100, message)
	}

	opts := deck.Options{
		Archetype:       deck.Archetype(*archetype),
		Power:           deck.PowerLevel(*power),
		Playstyle:       *playstyle,
		EnforceLegality: *legality,
		Seed:            *seed,
	}

	list, err := builder.Build(ctx, *commander, owned, opts)
	if err != nil {
		return err
	}

	printDeck(list)

	if *writeReport {
		dir := cfg.App.ReportDir
		if dir == "" {
			if dir, err = config.Dir(); err != nil {
				return err
			}
		}
		path := filepath.Join(dir, "deck-report.html")
		if err := report.WriteHTML(list, path); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", path)
	}
	return nil
}

func printDeck(list *deck.DeckList) {
	fmt.Printf("Commander: %s\n", list.Commander.Name)
	fmt.Printf("Strategy:  %s\n\n", list.Stats.StrategyExplanation)

	fmt.Printf("Main (%d):\n", list.Stats.TotalNonlands)
	for _, e := range list.Main {
		fmt.Printf("  1 %-40s %4.0f  %s\n", e.Name, e.CMC, e.Role)
	}

	fmt.Printf("\nLands (%d):\n", list.Stats.TotalLands)
	for _, e := range list.Lands {
		fmt.Printf("  %d %s\n", e.Quantity, e.Name)
	}

	if list.Stats.ShortBy > 0 {
		fmt.Printf("\nDeck is short by %d card(s); grow the collection and rebuild.\n", list.Stats.ShortBy)
	}
}

func runSync(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, svc, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	syncer := bulk.NewSyncer(scryfall.NewClient(), svc, func(ingested int) {
		log.Printf("Ingested %d cards...", ingested)
	})

	count, err := syncer.Sync(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Synced %d cards into the local database.\n", count)
	return nil
}

func runImport(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", cfg.Collection.FilePath, "Collection file (CSV or text)")
	watch := fs.Bool("watch", cfg.Collection.Watch, "Keep watching the file and re-import on change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	db, svc, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	importOnce := func(owned []deck.OwnedCard) error {
		if err := svc.ReplaceCollection(ctx, owned); err != nil {
			return err
		}
		fmt.Printf("Imported %d distinct cards.\n", len(owned))
		return nil
	}

	owned, err := collection.ParseFile(*file)
	if err != nil {
		return err
	}
	if err := importOnce(owned); err != nil {
		return err
	}

	if !*watch {
		return nil
	}

	delay, err := cfg.GetWatchDelay()
	if err != nil {
		return err
	}
	log.Printf("Watching %s for changes...", *file)

	watcher := collection.NewWatcher(*file, delay,
		func(owned []deck.OwnedCard) {
			if err := importOnce(owned); err != nil {
				log.Printf("Re-import failed: %v", err)
			}
		},
		func(err error) {
			log.Printf("Watcher: %v", err)
		},
	)
	if err := watcher.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func runSuggest(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	commander := fs.String("commander", "", "Commander name (required)")
	limit := fs.Int("limit", 15, "Number of suggestions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *commander == "" {
		return fmt.Errorf("-commander is required")
	}

	db, svc, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	owned, err := svc.GetCollection(ctx)
	if err != nil {
		return err
	}

	resolver := cards.NewService(svc, scryfall.NewClient())
	builder := deck.NewBuilder(resolver, storage.NewPlanStore(db))

	opts := deck.Options{EnforceLegality: cfg.Build.EnforceLegality}
	list, err := builder.Build(ctx, *commander, owned, opts)
	if err != nil {
		return err
	}

	commanderCard, err := resolver.ResolveCommander(ctx, *commander)
	if err != nil {
		return err
	}
	if commanderCard == nil {
		return &deck.CommanderNotFoundError{Name: *commander}
	}

	candidates, err := svc.AllCards(ctx)
	if err != nil {
		return err
	}

	ownedSet := make(map[string]bool, len(owned))
	cardMap := make(map[string]*cards.Card, len(candidates))
	for _, oc := range owned {
		ownedSet[strings.ToLower(oc.Name)] = true
	}
	for _, c := range candidates {
		cardMap[strings.ToLower(c.Name)] = c
	}

	plan := deck.BuildPlan(commanderCard, storage.NewPlanStore(db))
	targets := deck.ResolveTargets(plan, opts)

	suggestions := deck.RankUpgradeSuggestions(list, cardMap, plan, targets, candidates, ownedSet, *limit)
	if len(suggestions) == 0 {
		fmt.Println("No upgrades found; the local card database may need a sync.")
		return nil
	}

	fmt.Printf("Top upgrades for %s:\n", list.Commander.Name)
	for i, s := range suggestions {
		fmt.Printf("  %2d. %-40s %5.2f  %s\n", i+1, s.Name, s.ImpactScore, s.Role)
	}
	return nil
}
