package cmd

import (
	"context"
	"fmt"
	"time"

	"follow-check/core/instagram"
	"follow-check/feature/reciprocity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiUsername    string
	apiTarget      string
	apiRetries     int
	apiBaseWait    int
	apiSnapshotDir string
)

// apiCmd queries the live API with retry, backoff, and snapshot fallback.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Query Instagram live (may suffer rate limiting)",
	Long: `Fetch followers and following from the live API using a locally
exported browser session.

Rate-limited requests are retried with a linearly increasing wait
(base-wait x attempt). When retries are exhausted or the session is
rejected, the last snapshot for the account is used instead and the report
is marked stale. With no snapshot either, the command fails; run the
offline mode with an export JSON in that case.

Example:
  follow-check api --username my_login --target my_account --retries 3 --base-wait 45`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&apiUsername, "username", "", "Login username whose session file is used")
	apiCmd.Flags().StringVar(&apiTarget, "target", "", "Account to inspect (may equal --username)")
	apiCmd.Flags().IntVar(&apiRetries, "retries", 3, "Retries on rate limit before falling back")
	apiCmd.Flags().IntVar(&apiBaseWait, "base-wait", 45, "Base seconds for the incremental wait")
	apiCmd.Flags().StringVar(&apiSnapshotDir, "snapshot-dir", "", "Directory for snapshots (overrides SNAPSHOT_DIR)")
	_ = apiCmd.MarkFlagRequired("username")
	_ = apiCmd.MarkFlagRequired("target")

	RootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	source, err := instagram.NewClient(cfg.Remote, apiUsername, logg)
	if err != nil {
		return err
	}

	store, err := buildStore(cfg, apiSnapshotDir)
	if err != nil {
		return err
	}
	recorder := buildRecorder(cfg, logg)

	svc := reciprocity.NewService(source, store, recorder, logg)

	logg.Info("Fetching followers and following from the live API",
		zap.String("target", apiTarget),
		zap.Int("retries", apiRetries),
		zap.Int("base_wait_seconds", apiBaseWait),
	)

	report, err := svc.RunAPI(context.Background(), apiTarget, apiRetries, time.Duration(apiBaseWait)*time.Second)
	if err != nil {
		return err
	}

	if report.Stale {
		logg.Warn("Live data unavailable, report built from snapshot",
			zap.Time("captured_at", report.CapturedAt),
		)
	}
	fmt.Print(report.Render())
	return nil
}
