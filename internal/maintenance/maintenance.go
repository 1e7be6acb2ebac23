// Package maintenance runs periodic housekeeping against the SQLite file.
// With WAL journaling the write-ahead log only shrinks on checkpoint, so a
// long-lived server checkpoints on a cron schedule to keep the file small.
package maintenance

import (
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Run schedules a WAL checkpoint at cronExpr and starts the scheduler.
// The returned cron can be stopped at shutdown.
func Run(db *sql.DB, cronExpr string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		if _, err := db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
			slog.Error("wal checkpoint failed", "error", err)
			return
		}
		slog.Debug("wal checkpoint complete")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
