package services

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
)

// AuditLedgers cross-checks every fee line against its transaction log and
// logs each mismatch. The audit never mutates the ledger; a flagged row is
// fixed by hand after finding out how it diverged.
func AuditLedgers(db *sql.DB) error {
	log := config.GetLogger()

	mismatches, err := database.AuditLedger(db)
	if err != nil {
		return err
	}

	if len(mismatches) == 0 {
		log.Info("Ledger audit clean: all paid amounts match their transactions")
		return nil
	}

	for _, m := range mismatches {
		log.WithFields(logrus.Fields{
			"student_id":      m.StudentID,
			"category":        m.Category,
			"paid":            m.Paid.String(),
			"transaction_sum": m.TxSum.String(),
		}).Warn("Ledger mismatch: paid amount does not equal transaction sum")
	}
	log.WithField("count", len(mismatches)).Warn("Ledger audit found mismatches")
	return nil
}
