package cmd

import (
	"context"
	"fmt"

	"follow-check/feature/reciprocity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	offlineFollowersFile string
	offlineFollowingFile string
	offlineTarget        string
	offlineSnapshotDir   string
)

// offlineCmd compares export JSON files without touching the live API.
var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Compare Instagram export JSON files (recommended: zero rate limit)",
	Long: `Compare followers and following from an Instagram data export.

Use the followers_1.json and following.json files from the export archive.
The parsed lists are also saved as snapshots, so a later rate-limited api
run can fall back on them.

Example:
  follow-check offline --followers-file followers_1.json --following-file following.json --target my_account`,
	RunE: runOffline,
}

func init() {
	offlineCmd.Flags().StringVar(&offlineFollowersFile, "followers-file", "", "Path to followers_1.json (or similar) from the export")
	offlineCmd.Flags().StringVar(&offlineFollowingFile, "following-file", "", "Path to following.json (or similar) from the export")
	offlineCmd.Flags().StringVar(&offlineTarget, "target", "my_account", "Account name used to label results and snapshots")
	offlineCmd.Flags().StringVar(&offlineSnapshotDir, "snapshot-dir", "", "Directory for snapshots (overrides SNAPSHOT_DIR)")
	_ = offlineCmd.MarkFlagRequired("followers-file")
	_ = offlineCmd.MarkFlagRequired("following-file")

	RootCmd.AddCommand(offlineCmd)
}

func runOffline(cmd *cobra.Command, args []string) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	store, err := buildStore(cfg, offlineSnapshotDir)
	if err != nil {
		return err
	}
	recorder := buildRecorder(cfg, logg)

	svc := reciprocity.NewService(nil, store, recorder, logg)

	report, err := svc.RunOffline(context.Background(), offlineFollowersFile, offlineFollowingFile, offlineTarget)
	if err != nil {
		return err
	}

	logg.Info("Offline comparison completed, snapshots saved",
		zap.String("target", offlineTarget),
	)
	fmt.Print(report.Render())
	return nil
}
