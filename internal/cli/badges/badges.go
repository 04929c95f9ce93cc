package badges

import "github.com/spf13/cobra"

var BadgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Badge commands",
	Long:  "View earned badges and the full badge catalog",
}
