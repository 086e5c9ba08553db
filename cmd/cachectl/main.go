// Maintenance CLI for the query-embedding cache: inspect stats, trim old
// entries, and pre-warm queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"quiltdex-be/internal/config"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/repository/implementation"
	"quiltdex-be/pkg/database"
	"quiltdex-be/pkg/embedding/voyage"
	"quiltdex-be/pkg/search"

	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Unable to connect to DB: %v", err)
		os.Exit(1)
	}

	log := logger.NewZapLogger("logs/cachectl.log", false)
	defer log.Sync()
	cache := search.NewQueryEmbeddingCache(implementation.NewQueryCacheRepository(db), log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "stats":
		runStats(ctx, cache)
	case "cleanup":
		runCleanup(ctx, cache, os.Args[2:])
	case "warm":
		runWarm(ctx, cfg, cache, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cachectl <stats|cleanup|warm> [flags]")
	fmt.Println("  stats              show cache statistics")
	fmt.Println("  cleanup -days N    delete entries older than N days (default 30)")
	fmt.Println("  warm -q <query>    embed a query and store it in the cache")
}

func runStats(ctx context.Context, cache *search.QueryEmbeddingCache) {
	stats := cache.Stats(ctx)
	if stats == nil {
		color.Red("Failed to fetch cache stats (see logs)")
		os.Exit(1)
	}

	color.Cyan("Query embedding cache")
	fmt.Printf("  entries:        %d\n", stats.TotalEntries)
	fmt.Printf("  total hits:     %d\n", stats.TotalHits)
	fmt.Printf("  avg hits/query: %.2f\n", stats.AvgHitsPerQuery)
	if stats.OldestEntry != nil {
		fmt.Printf("  oldest entry:   %s\n", stats.OldestEntry.Format(time.RFC3339))
	}
	if stats.NewestEntry != nil {
		fmt.Printf("  newest entry:   %s\n", stats.NewestEntry.Format(time.RFC3339))
	}
}

func runCleanup(ctx context.Context, cache *search.QueryEmbeddingCache, args []string) {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	days := fs.Int("days", search.DefaultCacheMaxAgeDays, "delete entries older than this many days")
	fs.Parse(args)

	deleted := cache.Cleanup(ctx, *days)
	color.Green("Deleted %d cache entries older than %d days", deleted, *days)
}

func runWarm(ctx context.Context, cfg *config.Config, cache *search.QueryEmbeddingCache, args []string) {
	fs := flag.NewFlagSet("warm", flag.ExitOnError)
	query := fs.String("q", "", "query text to embed and cache")
	fs.Parse(args)

	if *query == "" {
		color.Red("warm requires -q <query>")
		os.Exit(1)
	}
	if cfg.Keys.Voyage == "" {
		color.Red("No embedding credential configured (VOYAGE_API_KEY)")
		os.Exit(1)
	}

	// Unlike the request path, warming can afford retries.
	provider := voyage.NewVoyageProvider(
		cfg.Keys.Voyage,
		cfg.Ai.EmbeddingBaseURL,
		cfg.Ai.EmbeddingModel,
		voyage.WithRetries(3),
	)

	vec, err := provider.Generate(ctx, *query)
	if err != nil {
		color.Red("Embedding failed: %v", err)
		os.Exit(1)
	}

	cache.CacheEmbedding(ctx, *query, vec)
	color.Green("Cached embedding for %q (%d dims)", search.Normalize(*query), len(vec))
}
