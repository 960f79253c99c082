// Command chunkgen generates one terrain chunk of forests and villages,
// logs what it placed and records the run in the SQLite ledger.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/hamlet/internal/chunk"
	"github.com/talgya/hamlet/internal/entropy"
	"github.com/talgya/hamlet/internal/persistence"
	"github.com/talgya/hamlet/internal/world"
)

func main() {
	slog.SetDefault(newLogger(os.Stdout, envOrDefault("CHUNKGEN_LOG_LEVEL", "info")))

	// Configuration from environment.
	preset := envOrDefault("CHUNKGEN_PRESET", "default")
	dbPath := envOrDefault("CHUNKGEN_DB", "data/chunkgen.db")
	seed := envUintOrDefault("CHUNKGEN_SEED", 0)

	cfg, err := chunk.LookupPreset(preset)
	if err != nil {
		slog.Error("bad preset", "error", err)
		os.Exit(1)
	}

	if seed == 0 {
		seed = entropy.SeedFromSource(entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY")))
	}
	slog.Info("chunkgen starting", "preset", preset, "seed", seed, "size", cfg.Size)

	// ── Terrain ──────────────────────────────────────────────────────
	terrainCfg := world.DefaultTerrainConfig()
	terrainCfg.Seed = int64(seed)
	terrainCfg.HalfSize = cfg.Size / 2
	terrain := world.NewTerrain(terrainCfg)

	// ── Chunk ────────────────────────────────────────────────────────
	c, err := chunk.New(cfg, terrain, entropy.NewSource(seed))
	if err != nil {
		slog.Error("invalid chunk config", "error", err)
		os.Exit(1)
	}
	rep := c.Populate()
	for _, r := range c.Regions() {
		slog.Info("region", "label", r.Label, "name", r.Name, "center", r.Center, "radius", fmt.Sprintf("%.1f", r.Radius))
	}

	// ── Ledger ───────────────────────────────────────────────────────
	if dir := filepath.Dir(dbPath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runID, err := db.SaveRun(preset, rep)
	if err != nil {
		slog.Error("failed to record run", "error", err)
		os.Exit(1)
	}
	if err := db.SaveMeta("last_run", strconv.FormatInt(runID, 10)); err != nil {
		slog.Warn("failed to save meta", "error", err)
	}

	printSummary(os.Stdout, runID, rep)

	runs, err := db.RecentRuns(5)
	if err != nil {
		slog.Warn("failed to list runs", "error", err)
		return
	}
	printHistory(os.Stdout, runs)
}

// newLogger picks a text handler for terminals and JSON otherwise.
func newLogger(out *os.File, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printSummary(w io.Writer, runID int64, rep chunk.Report) {
	fmt.Fprintf(w, "\nRun #%d  seed %d  (%s)\n", runID, rep.Seed, rep.Elapsed)
	fmt.Fprintf(w, "  regions   %s placed, %s rejected\n",
		humanize.Comma(int64(rep.Regions)), humanize.Comma(int64(rep.RegionsRejected)))
	fmt.Fprintf(w, "  forests   %s with %s trees\n",
		humanize.Comma(int64(rep.Forests)), humanize.Comma(int64(rep.Trees)))
	fmt.Fprintf(w, "  villages  %s with %s huts, %s villagers, %s unhoused\n",
		humanize.Comma(int64(rep.Villages)), humanize.Comma(int64(rep.Huts)),
		humanize.Comma(int64(rep.Villagers)), humanize.Comma(int64(rep.Unhoused)))
	for i, v := range rep.VillageReports {
		fmt.Fprintf(w, "    %s %-18s r=%-6s %3d villagers  %2d/%2d huts  %d failed attempts\n",
			humanize.Ordinal(i+1), v.Name, humanize.FtoaWithDigits(v.Radius, 1),
			v.HeadCount, v.Stats.PlacedHuts, v.Stats.TargetHuts, v.Stats.FailedAttempts)
	}
}

func printHistory(w io.Writer, runs []persistence.Run) {
	if len(runs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRecent runs:")
	for _, r := range runs {
		fmt.Fprintf(w, "  #%-4d %-9s seed %-20s %s villagers  %s\n",
			r.ID, r.Preset, r.Seed, humanize.Comma(int64(r.Villagers)), humanize.Time(r.CreatedAt()))
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envUintOrDefault(key string, defaultVal uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		slog.Warn("ignoring malformed value", "key", key, "value", v)
	}
	return defaultVal
}
