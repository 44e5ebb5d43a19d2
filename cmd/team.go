package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

// teamCmd aggregates per-member activity across the configured groups.
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show per-member activity across groups.",
	Long: `Aggregate commits, merge requests and issues per contributor identity.

Identities are resolved through configured aliases first, then project
membership (email, display name, username). Unresolved authors are kept
and flagged rather than dropped, so bot and drive-by commits stay visible.

The view includes:
- Commits, merge requests and touched projects per member
- Issues assigned and resolved within the window
- Current workload (open issues, open MRs, overdue issues)

Examples:
  # Team view for one group
  gldash team --groups 1721

  # Map legacy emails onto canonical names via .gldash.yaml aliases
  gldash team --groups 1721 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTeam(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot analyze team activity", err)
		}
	},
}
