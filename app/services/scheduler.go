package services

import (
	"database/sql"
	"time"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log := config.GetLogger()
		log.Info("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 11:30 PM (23:30), after the day's payments settle.
			if now.Hour() == 23 && now.Minute() == 30 {
				log.Info("Triggering scheduled tasks [23:30]...")

				if err := AuditLedgers(db); err != nil {
					log.WithError(err).Error("Nightly ledger audit failed")
				}
			}
		}
	}()
}
