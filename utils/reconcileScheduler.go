package utils

import (
	"lms/config"
	"lms/database"
	"lms/ledger"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReconcileScheduler sets up the daily pending-purchase report.
// A purchase whose notification never arrives stays PENDING forever; this
// job surfaces those for manual reconciliation and never mutates them.
func InitializeReconcileScheduler() {
	log.Println("[RECONCILE-SCHEDULER] Initializing pending purchase scheduler...")

	c := cron.New()

	// Run daily at 9 AM
	c.AddFunc("0 9 * * *", func() {
		log.Println("[RECONCILE-SCHEDULER] Running daily pending purchase check...")
		ReportStalePendingPurchases()
	})

	c.Start()
	log.Println("[RECONCILE-SCHEDULER] Scheduler started - runs daily at 9 AM")
}

// ReportStalePendingPurchases logs purchases that have been pending longer
// than the configured age.
func ReportStalePendingPurchases() {
	age := time.Duration(config.AppConfig.PendingReportHours) * time.Hour

	purchases, err := ledger.StalePendingPurchases(database.Database.Db, age)
	if err != nil {
		log.Printf("[RECONCILE-SCHEDULER] Error fetching pending purchases: %v", err)
		return
	}

	if len(purchases) == 0 {
		log.Println("[RECONCILE-SCHEDULER] No stale pending purchases")
		return
	}

	log.Printf("[RECONCILE-SCHEDULER] Found %d purchases pending for over %v", len(purchases), age)
	for _, p := range purchases {
		log.Printf("[RECONCILE-SCHEDULER] Pending purchase %s (course %s, user %s, amount %.2f, created %s)",
			p.ID, p.CourseID, p.UserID, p.Amount, p.CreatedAt.Format(time.RFC3339))
	}
}
