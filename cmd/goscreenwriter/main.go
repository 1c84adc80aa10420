/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"goscreenwriter/internal/config"
	"goscreenwriter/internal/crash"
	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/editor"
	"goscreenwriter/internal/export"
	"goscreenwriter/internal/generate"
	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/screenplay"
	"goscreenwriter/internal/store"
	"goscreenwriter/internal/timing"
	"goscreenwriter/internal/version"
)

func usage() {
	fmt.Println("Go Screen Writer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  goscreenwriter version|-v|--version            Show version")
	fmt.Println("  goscreenwriter generate <topic> [style]        Generate a script and store it (styles: comedy, thriller, educational)")
	fmt.Println("  goscreenwriter list                            List stored scripts")
	fmt.Println("  goscreenwriter show <id>                       Print a script as screenplay text")
	fmt.Println("  goscreenwriter edit <id>                       Edit scenes interactively (undo/redo, live review)")
	fmt.Println("  goscreenwriter estimate <id>                   Print target and estimated runtime with breakdown")
	fmt.Println("  goscreenwriter validate <id>                   Report scene defects")
	fmt.Println("  goscreenwriter suggest cast <topic> [style]    Suggest characters for a topic")
	fmt.Println("  goscreenwriter suggest line <name> <topic> [style]  Suggest dialogue for a character")
	fmt.Println("  goscreenwriter search <query>                  Full-text search over title, topic, and synopsis")
	fmt.Println("  goscreenwriter export <id> <dir> [preset]      Export a script (presets: draft, final)")
	fmt.Println("  goscreenwriter import <file>                   Import screenplay text or a schema-checked JSON manifest")
	fmt.Println("  goscreenwriter delete <id>                     Delete a script")
}

func main() {
	cfg, dsn, _ := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")

	root := cfg.Store.Root
	if root == "" {
		root, _ = os.UserHomeDir()
	}
	defer func() { crash.Recover(root) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}

	ctx := context.Background()

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Go Screen Writer")
		fmt.Println(version.String())
		return
	case "generate":
		if len(args) < 3 {
			fmt.Println("generate requires <topic>")
			usage()
			os.Exit(2)
		}
		topic := args[2]
		style := domain.Style(cfg.General.DefaultStyle)
		if len(args) >= 4 {
			style = domain.Style(strings.ToLower(args[3]))
		}
		l.Info("generate script", slog.String("topic", topic), slog.String("style", string(style)))
		s, err := generate.Generate(topic, style)
		if err != nil {
			fail(l, "generate failed", err)
		}
		st := openStore(ctx, l, cfg, dsn, root)
		defer closeStore(l, st)
		saved, err := st.Create(ctx, s)
		if err != nil {
			fail(l, "store failed", err)
		}
		b := timing.Estimate(saved)
		fmt.Printf("Created script #%d: %s\n", saved.ID, saved.Title)
		fmt.Printf("Scenes: %d  Estimated runtime: %s\n", len(saved.Scenes), timing.FormatRuntime(b.Total))
		return
	case "list":
		st := openStore(ctx, l, cfg, dsn, root)
		defer closeStore(l, st)
		scripts, err := st.List(ctx)
		if err != nil {
			fail(l, "list failed", err)
		}
		if len(scripts) == 0 {
			fmt.Println("No scripts stored yet.")
			return
		}
		for _, s := range scripts {
			b := timing.Estimate(s)
			fmt.Printf("#%d  %-40s  %s  %d scenes  %s\n", s.ID, s.Title, s.Style, len(s.Scenes), timing.FormatRuntime(b.Total))
		}
		return
	case "show":
		s := fetchScript(ctx, l, cfg, dsn, root, args)
		fmt.Print(screenplay.Format(s))
		return
	case "estimate":
		s := fetchScript(ctx, l, cfg, dsn, root, args)
		printEstimate(os.Stdout, s)
		return
	case "edit":
		if len(args) < 3 {
			fmt.Println("edit requires <id>")
			usage()
			os.Exit(2)
		}
		id := parseID(args[2])
		st := openStore(ctx, l, cfg, dsn, root)
		defer closeStore(l, st)
		l.Info("edit script", slog.Int64("id", id))
		if err := runEditLoop(ctx, st, id, os.Stdin, os.Stdout); err != nil {
			fail(l, "edit failed", err)
		}
		return
	case "validate":
		s := fetchScript(ctx, l, cfg, dsn, root, args)
		defects := editor.Validate(s.Scenes)
		if editor.Clean(defects) {
			fmt.Println("All scenes pass validation.")
			return
		}
		ids := make([]string, 0, len(defects))
		for id := range defects {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			for _, d := range defects[id] {
				fmt.Printf("%s: %s\n", id, d)
			}
		}
		os.Exit(1)
	case "suggest":
		if len(args) < 4 {
			fmt.Println("suggest requires a subcommand: cast <topic> [style] or line <name> <topic> [style]")
			usage()
			os.Exit(2)
		}
		switch args[2] {
		case "cast":
			style := domain.Style(cfg.General.DefaultStyle)
			if len(args) >= 5 {
				style = domain.Style(strings.ToLower(args[4]))
			}
			for _, name := range editor.SuggestCharacters(args[3], style) {
				fmt.Println(name)
			}
		case "line":
			if len(args) < 5 {
				fmt.Println("suggest line requires <name> and <topic>")
				os.Exit(2)
			}
			style := domain.Style(cfg.General.DefaultStyle)
			if len(args) >= 6 {
				style = domain.Style(strings.ToLower(args[5]))
			}
			for _, line := range editor.SuggestDialogue(args[3], args[4], style) {
				fmt.Println(line)
			}
		default:
			fmt.Println("unknown suggest subcommand:", args[2])
			os.Exit(2)
		}
		return
	case "search":
		if len(args) < 3 {
			fmt.Println("search requires <query>")
			usage()
			os.Exit(2)
		}
		st := openStore(ctx, l, cfg, dsn, root)
		defer closeStore(l, st)
		results, err := st.Search(ctx, strings.Join(args[2:], " "), 20)
		if err != nil {
			fail(l, "search failed", err)
		}
		if len(results) == 0 {
			fmt.Println("No matches.")
			return
		}
		for _, r := range results {
			if r.Snippet != "" {
				fmt.Printf("#%d  %s: %s\n", r.ID, r.Title, r.Snippet)
			} else {
				fmt.Printf("#%d  %s\n", r.ID, r.Title)
			}
		}
		return
	case "export":
		if len(args) < 4 {
			fmt.Println("export requires <id> and <dir>")
			usage()
			os.Exit(2)
		}
		s := fetchScript(ctx, l, cfg, dsn, root, args)
		opt := export.BatchOptions{OutDir: args[3]}
		if len(args) >= 5 {
			opt.Preset = export.PresetName(strings.ToLower(args[4]))
		}
		l.Info("export script", slog.Int64("id", s.ID), slog.String("dir", args[3]))
		if err := export.BatchExport(s, opt); err != nil {
			fail(l, "export failed", err)
		}
		fmt.Printf("Exported %s to %s\n", export.FileSlug(s), args[3])
		return
	case "import":
		if len(args) < 3 {
			fmt.Println("import requires <file>")
			usage()
			os.Exit(2)
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			fail(l, "read failed", err)
		}
		s, warnings, err := loadImport(data, cfg.General.DefaultRuntime)
		if err != nil {
			fail(l, "import rejected", err)
		}
		for _, w := range warnings {
			fmt.Println("Warning:", w)
		}
		st := openStore(ctx, l, cfg, dsn, root)
		defer closeStore(l, st)
		saved, err := st.Create(ctx, s)
		if err != nil {
			fail(l, "store failed", err)
		}
		fmt.Printf("Imported script #%d: %s (%d scenes)\n", saved.ID, saved.Title, len(saved.Scenes))
		return
	case "delete":
		if len(args) < 3 {
			fmt.Println("delete requires <id>")
			usage()
			os.Exit(2)
		}
		id := parseID(args[2])
		st := openStore(ctx, l, cfg, dsn, root)
		defer closeStore(l, st)
		if err := st.Delete(ctx, id); err != nil {
			fail(l, "delete failed", err)
		}
		fmt.Println("Deleted script", id)
		return
	}

	usage()
}

// fetchScript handles the shared "<cmd> <id>" shape: open the store, fetch,
// close. Exits the process on any failure.
func fetchScript(ctx context.Context, l *slog.Logger, cfg config.AppConfig, dsn, root string, args []string) domain.Script {
	if len(args) < 3 {
		fmt.Printf("%s requires <id>\n", args[1])
		usage()
		os.Exit(2)
	}
	id := parseID(args[2])
	st := openStore(ctx, l, cfg, dsn, root)
	defer closeStore(l, st)
	s, err := st.Get(ctx, id)
	if err != nil {
		fail(l, "fetch failed", err)
	}
	return s
}

func openStore(ctx context.Context, l *slog.Logger, cfg config.AppConfig, dsn, root string) store.Store {
	if cfg.Store.Driver == "postgres" {
		if dsn == "" {
			fmt.Println("Error: store driver is postgres but no DSN is configured (set " + config.EnvPostgresDSN + " or store one with config)")
			os.Exit(1)
		}
		st, err := store.OpenPostgres(ctx, dsn)
		if err != nil {
			fail(l, "postgres open failed", err)
		}
		return st
	}
	st, err := store.OpenSQLite(root)
	if err != nil {
		fail(l, "sqlite open failed", err)
	}
	return st
}

func closeStore(l *slog.Logger, st store.Store) {
	if err := st.Close(); err != nil {
		l.Error("store close failed", slog.Any("err", err))
	}
}

// printEstimate shows the content-derived estimate next to the generation
// placeholder; the two runtime values are independent and may disagree.
func printEstimate(w io.Writer, s domain.Script) {
	b := timing.Estimate(s)
	status := timing.Classify(b.Total)
	fmt.Fprintf(w, "Target runtime:    %s (%d s, generation placeholder)\n", timing.FormatRuntime(s.TargetRuntime), s.TargetRuntime)
	fmt.Fprintf(w, "Estimated runtime: %s (%d s)\n", status.Formatted, b.Total)
	fmt.Fprintf(w, "  Dialogue:     %d s\n", b.Dialogue)
	fmt.Fprintf(w, "  Action:       %d s\n", b.Action)
	fmt.Fprintf(w, "  Camera notes: %d s\n", b.CameraNotes)
	fmt.Fprintf(w, "  Transitions:  %d s\n", b.Transitions)
	for i, sc := range b.PerScene {
		fmt.Fprintf(w, "  Scene %d (%s): %d s\n", i+1, sc.SceneID, sc.Total)
	}
	fmt.Fprintf(w, "Status: %s (%s)\n", status.Band, status.Message)
	if status.Recommendation != "" {
		fmt.Fprintln(w, "Hint:", status.Recommendation)
	}
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Println("Error: invalid script id:", raw)
		os.Exit(2)
	}
	return id
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}
