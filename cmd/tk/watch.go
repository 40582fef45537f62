package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/config"
	"github.com/untoldecay/tickets/internal/debug"
	"github.com/untoldecay/tickets/internal/types"
	"github.com/untoldecay/tickets/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the document and reprint ready work on change",
	Long: `Watch the ticket document and reprint ready work whenever it changes.
Useful in a side terminal while closing tickets elsewhere. Falls back to
polling when filesystem events are unavailable.`,
	Run: func(cmd *cobra.Command, args []string) {
		project, _ := cmd.Flags().GetString("project")

		printReady(project)

		w, err := newDocWatcher(docStore.Path(), func() {
			printReady(project)
		})
		if err != nil {
			fail(err)
		}
		w.run()
	},
}

func printReady(project string) {
	ready, err := svc.Next(rootCtx, project)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
	if jsonOutput {
		if ready == nil {
			ready = []*types.NextTicket{}
		}
		outputJSON(ready)
		return
	}
	if len(ready) == 0 {
		fmt.Println(ui.HintStyle.Render("Nothing is ready."))
		return
	}
	for _, n := range ready {
		fmt.Println(ui.RenderUnblockTree(n))
	}
}

// docWatcher monitors the document file using filesystem events, or polling
// when the event watcher cannot be created. Events are debounced: saves go
// through a temp file plus rename, which fires several events per write.
type docWatcher struct {
	docPath   string
	watcher   *fsnotify.Watcher
	onChanged func()

	pollInterval time.Duration
	lastModTime  time.Time
	lastSize     int64

	debounce time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

func newDocWatcher(docPath string, onChanged func()) (*docWatcher, error) {
	w := &docWatcher{
		docPath:      docPath,
		onChanged:    onChanged,
		pollInterval: config.GetDuration("watch.poll-interval"),
		debounce:     config.GetDuration("watch.debounce"),
	}
	if w.pollInterval <= 0 {
		w.pollInterval = 5 * time.Second
	}
	if w.debounce <= 0 {
		w.debounce = 500 * time.Millisecond
	}

	if stat, err := os.Stat(docPath); err == nil {
		w.lastModTime = stat.ModTime()
		w.lastSize = stat.Size()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		debug.Logf("fsnotify unavailable, polling instead: %v", err)
		return w, nil
	}
	// Watch the parent directory: the document is replaced by rename, so
	// watching the file itself loses the watch after the first save.
	if err := watcher.Add(filepath.Dir(docPath)); err != nil {
		watcher.Close()
		debug.Logf("fsnotify add failed, polling instead: %v", err)
		return w, nil
	}
	w.watcher = watcher
	return w, nil
}

func (w *docWatcher) run() {
	if w.watcher == nil {
		w.poll()
		return
	}
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.docPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.fire()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.Logf("watcher error: %v", err)
		}
	}
}

func (w *docWatcher) poll() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for range ticker.C {
		stat, err := os.Stat(w.docPath)
		if err != nil {
			continue
		}
		if stat.ModTime() != w.lastModTime || stat.Size() != w.lastSize {
			w.lastModTime = stat.ModTime()
			w.lastSize = stat.Size()
			w.fire()
		}
	}
}

func (w *docWatcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChanged)
}

func init() {
	watchCmd.Flags().StringP("project", "p", "", "filter by project membership (case-insensitive)")
	rootCmd.AddCommand(watchCmd)
}
