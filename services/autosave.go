package services

import (
	"context"
	"time"
)

// ==================== AUTO-SAVE LOOP ====================

// StartAutoSave starts the ticker loop, using DefaultAutoSaveInterval when
// interval <= 0. It does nothing when the loop is already running.
func (es *EditorSession) StartAutoSave(interval time.Duration) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if es.running {
		return
	}
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}
	es.interval = interval
	es.startAutoSave()
}

// StopAutoSave stops the ticker loop and waits for it to exit
func (es *EditorSession) StopAutoSave() {
	es.mu.Lock()
	done := es.stopAutoSave()
	es.mu.Unlock()

	if done != nil {
		<-done
	}
}

// startAutoSave launches the ticker loop. Caller holds es.mu.
func (es *EditorSession) startAutoSave() {
	if es.interval <= 0 || es.running {
		return
	}
	es.running = true
	es.stopChan = make(chan struct{})
	es.done = make(chan struct{})

	es.logger.Debug("auto-save started", "interval", es.interval)
	go es.run(es.interval, es.stopChan, es.done)
}

// stopAutoSave signals the loop to exit and returns a channel closed once
// it has. Caller holds es.mu and must wait on the channel after releasing it.
func (es *EditorSession) stopAutoSave() <-chan struct{} {
	if !es.running {
		return nil
	}
	close(es.stopChan)
	es.running = false
	es.logger.Debug("auto-save stopped")
	return es.done
}

// run saves pending edits on every tick until stop is closed
func (es *EditorSession) run(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// failures are logged and reflected in the status by AutoSave
			_ = es.AutoSave(context.Background())
		case <-stop:
			return
		}
	}
}
