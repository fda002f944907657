// Package cron runs the background roster backup. The user store already
// flushes every mutation to its blob store; this job additionally files a
// dated copy of the roster into the submission archive so an accidental
// deletion can be recovered from yesterday's snapshot.
package cron

import (
	"context"
	"log"
	"time"

	"labour-dashboard/internal/archive"
	"labour-dashboard/internal/store"
)

// StartRosterBackup launches a background goroutine that archives the user
// roster once per day (and once immediately on startup).
func StartRosterBackup(s *store.Store, sink archive.Sink) {
	go func() {
		runBackup(s, sink)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			runBackup(s, sink)
		}
	}()

	log.Println("[cron] roster backup started – runs every 24 h")
}

// runBackup files the current roster as a roster_backup submission.
// Credentials are stripped: backups are for recovering the hierarchy, not
// the passwords.
func runBackup(s *store.Store, sink archive.Sink) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := s.List()
	for i := range users {
		users[i] = users[i].Sanitized()
	}

	sub, err := archive.NewSubmission(
		archive.KindRosterBackup, "system", "SYSTEM", "State-wide",
		time.Now().Format("2006-01-02"), users,
	)
	if err != nil {
		log.Printf("[cron] roster backup build failed: %v", err)
		return
	}
	if err := sink.Save(ctx, sub); err != nil {
		log.Printf("[cron] roster backup save failed: %v", err)
		return
	}

	log.Printf("[cron] roster backup complete – %d accounts archived", len(users))
}
