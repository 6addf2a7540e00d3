package report

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ginjaninja78/coverage-report/pkg/utils"
)

// DefaultSettle is how long a survey file must stay unchanged before it is
// processed. Spreadsheet tools write in several steps.
const DefaultSettle = 500 * time.Millisecond

// Watch processes survey files as they appear in the input directory until
// ctx is cancelled. Files already present are not processed; use RunAll for
// those. onResult is called for every processed file, from a single
// goroutine.
func (g *Generator) Watch(ctx context.Context, settle time.Duration, onResult func(Result)) error {
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(g.cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", g.cfg.InputDir, err)
	}
	g.logger.Info("Watching for surveys", zap.String("dir", g.cfg.InputDir), zap.Duration("settle", settle))

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settle / 5)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSurvey(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				pending[event.Name] = time.Now()
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				delete(pending, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Warn("Watcher error", zap.Error(err))

		case now := <-ticker.C:
			for _, path := range settled(pending, now, settle) {
				result := g.Process(ctx, path)
				if onResult != nil {
					onResult(result)
				}
			}
		}
	}
}

// settled removes and returns the pending paths quiet for at least settle,
// sorted by name.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

// isSurvey reports whether a watched path has a survey extension and is not
// an editor lock file.
func isSurvey(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range utils.DefaultExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
