package util

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// WorkDirs tracks the per-chapter folders pages are downloaded into
// before they are packed, so an interrupt can remove the unfinished ones.
type WorkDirs struct {
	output string

	mu   sync.Mutex
	dirs map[string]struct{}
}

func NewWorkDirs(output string) *WorkDirs {
	return &WorkDirs{output: output, dirs: map[string]struct{}{}}
}

func (w *WorkDirs) Add(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[dir] = struct{}{}
}

// Release stops tracking dir and deletes it unless keep is set.
func (w *WorkDirs) Release(dir string, keep bool) {
	w.mu.Lock()
	delete(w.dirs, dir)
	w.mu.Unlock()

	if !keep {
		_ = os.RemoveAll(dir)
	}
}

// Abandon deletes every tracked folder and then the output folder if it
// ended up empty. It returns the folders removed.
func (w *WorkDirs) Abandon() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var removed []string
	for dir := range w.dirs {
		if err := os.RemoveAll(dir); err != nil {
			log.Warnf("cleaning up %s: %v", dir, err)
			continue
		}
		removed = append(removed, dir)
		delete(w.dirs, dir)
	}

	if entries, err := os.ReadDir(w.output); err == nil && len(entries) == 0 {
		if os.Remove(w.output) == nil {
			log.Infof("removed empty output folder %s", w.output)
		}
	}

	return removed
}

// AbandonOnInterrupt cleans up and exits with status 1 on SIGINT or SIGTERM.
func (w *WorkDirs) AbandonOnInterrupt() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Warn("interrupt received, removing unfinished chapters")
		for _, dir := range w.Abandon() {
			log.Infof("removed %s", dir)
		}
		os.Exit(1)
	}()
}
