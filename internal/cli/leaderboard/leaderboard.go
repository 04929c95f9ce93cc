package leaderboard

import "github.com/spf13/cobra"

var LeaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Leaderboard commands",
	Long:  "See how you rank against other learners",
}
