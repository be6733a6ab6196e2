package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the event bursts editors fire per save.
const watchDebounce = 250 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <gold.jsonl> <predictions.jsonl>",
	Short: "Re-score predictions whenever the files change",
	Long: `Watch monitors the gold and prediction files and re-scores on every
write, printing the same report as the score command each round.
Useful while iterating on prompts or the response parser.
Press Ctrl-C to stop.

Examples:
  annoscore watch gold.jsonl runs/latest/predictions.jsonl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// Watch the parent directories: editors and predict runs replace
		// files, which drops a watch placed on the file itself.
		watched := make(map[string]bool, len(args))
		for _, path := range args {
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			watched[filepath.Clean(path)] = true
		}

		rescore := func() {
			fmt.Printf("--- %s\n", time.Now().Format(time.TimeOnly))
			if err := scoreFiles(args[0], args[1], os.Stdout); err != nil {
				slog.Error("scoring failed", "error", err)
			}
		}
		rescore()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !watched[filepath.Clean(event.Name)] {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				pending = time.After(watchDebounce)
			case <-pending:
				pending = nil
				rescore()
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				slog.Error("watcher error", "error", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
