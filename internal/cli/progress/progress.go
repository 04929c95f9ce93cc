package progress

import "github.com/spf13/cobra"

var ProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Learning progress commands",
	Long:  "Update topic progress and view your learning analytics",
}
