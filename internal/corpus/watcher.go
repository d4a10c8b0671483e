package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the job feed files and flags the loaded corpus as stale
// when a feed changes on disk. The corpus itself is immutable once loaded;
// staleness is surfaced through the health and stats endpoints so operators
// know a restart (or warmup) would pick up fresh postings.
type Watcher struct {
	mu sync.RWMutex

	feeds       []string
	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	changeChan chan struct{}

	changeCallback func()
	logger         *errors.Logger

	running    bool
	stale      bool
	staleSince time.Time
}

// NewWatcher creates a feed file watcher from the corpus configuration.
// changeCallback may be nil; when set it fires once per debounced change.
func NewWatcher(cfg config.CorpusConfig, changeCallback func(), logger *errors.Logger) *Watcher {
	debounceDelay := cfg.WatchDelay
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	var feeds []string
	if cfg.LinkedInPath != "" {
		feeds = append(feeds, cfg.LinkedInPath)
	}
	if cfg.NaukriPath != "" {
		feeds = append(feeds, cfg.NaukriPath)
	}

	return &Watcher{
		feeds:          feeds,
		lastModTime:    make(map[string]time.Time),
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		changeChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		changeCallback: changeCallback,
		logger:         logger,
	}
}

// Start begins watching the feed files for changes
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("corpus watcher is already running")
	}
	if len(w.feeds) == 0 {
		return fmt.Errorf("no feed paths configured to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = watcher

	if err := w.updateModTimes(); err != nil {
		w.cleanupWatcher()
		return fmt.Errorf("failed to get initial feed modification times: %w", err)
	}

	for _, feed := range w.feeds {
		if err := w.addFeedToWatcher(feed); err != nil && w.logger != nil {
			w.logger.Warn("Failed to watch feed file", "file", feed, "error", err)
		}
	}

	w.running = true
	go w.watchLoop()

	if w.logger != nil {
		w.logger.Info("Corpus feed watcher started",
			"files", w.feeds,
			"debounce_delay", w.debounceDelay)
	}
	return nil
}

// Stop stops the feed file watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			if w.logger != nil {
				w.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	w.running = false

	if w.logger != nil {
		w.logger.Info("Corpus feed watcher stopped")
	}
	return nil
}

// cleanupWatcher closes the file watcher and logs any errors
func (w *Watcher) cleanupWatcher() {
	if w.fsWatcher != nil {
		if closeErr := w.fsWatcher.Close(); closeErr != nil && w.logger != nil {
			w.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// addFeedToWatcher adds a feed file and its directory to the watcher
func (w *Watcher) addFeedToWatcher(feed string) error {
	if err := w.fsWatcher.Add(feed); err != nil {
		// If the feed doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(feed)
			if err := w.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if w.logger != nil {
				w.logger.Info("Watching directory for feed file",
					"file", feed, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", feed, err)
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(feed)
	if err := w.fsWatcher.Add(dir); err != nil {
		if w.logger != nil {
			w.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}
	return nil
}

// updateModTimes updates the stored modification times for all watched feeds
func (w *Watcher) updateModTimes() error {
	for _, feed := range w.feeds {
		if stat, err := os.Stat(feed); err == nil {
			w.lastModTime[feed] = stat.ModTime()
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat feed %s: %w", feed, err)
		}
	}
	return nil
}

// hasFeedChanged checks if a feed has been modified since last check
func (w *Watcher) hasFeedChanged(feed string) bool {
	stat, err := os.Stat(feed)
	if err != nil {
		if os.IsNotExist(err) {
			// Feed was deleted
			if _, exists := w.lastModTime[feed]; exists {
				delete(w.lastModTime, feed)
				return true
			}
		}
		return false
	}

	lastMod, exists := w.lastModTime[feed]
	if !exists || stat.ModTime().After(lastMod) {
		w.lastModTime[feed] = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for feed watching
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if w.shouldProcessEvent(event) {
				w.scheduleCheck()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.LogError(err, "Feed watcher error")
			}

		case <-w.changeChan:
			// Debounced change trigger
			if w.hasAnyFeedChanged() {
				w.markStale()
			}

		case <-w.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event concerns a watched feed
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	isWatchedFeed := false
	for _, feed := range w.feeds {
		if event.Name == feed || filepath.Base(event.Name) == filepath.Base(feed) {
			isWatchedFeed = true
			break
		}
	}

	if !isWatchedFeed {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasAnyFeedChanged checks if any of the watched feeds have changed
func (w *Watcher) hasAnyFeedChanged() bool {
	return slices.ContainsFunc(w.feeds, w.hasFeedChanged)
}

// markStale records that the on-disk feeds no longer match the loaded corpus
func (w *Watcher) markStale() {
	w.mu.Lock()
	firstChange := !w.stale
	if firstChange {
		w.stale = true
		w.staleSince = time.Now()
	}
	w.mu.Unlock()

	if w.logger != nil {
		w.logger.Info("Job feed files changed on disk, loaded corpus is stale")
	}
	if firstChange && w.changeCallback != nil {
		w.changeCallback()
	}
}

// scheduleCheck schedules a debounced staleness check
func (w *Watcher) scheduleCheck() {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Reset the debounce timer
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.changeChan <- struct{}{}:
			// Check scheduled
		default:
			// Channel is full, check already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Stale reports whether a feed changed since the corpus was loaded
func (w *Watcher) Stale() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stale
}

// Status returns watcher state for the health and stats endpoints
func (w *Watcher) Status() map[string]any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	status := map[string]any{
		"running":       w.running,
		"watched_files": w.feeds,
		"stale":         w.stale,
	}
	if w.stale {
		status["stale_since"] = w.staleSince.Format(time.RFC3339)
	}
	return status
}
