package leaderboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top of the leaderboard",
	Long:  "View the highest ranked learners by lifetime XP or this week's XP",
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, _ := cmd.Flags().GetString("metric")
		limit, _ := cmd.Flags().GetInt("limit")

		if metric != "xp" && metric != "weekly_xp" {
			return fmt.Errorf("--metric must be xp or weekly_xp")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/leaderboard?metric=%s&limit=%d",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"), metric, limit)

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get leaderboard: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})
			entries := data["entries"].([]interface{})

			title := "Lifetime XP"
			if metric == "weekly_xp" {
				title = "This Week's XP"
			}
			fmt.Printf("\nLeaderboard (%s):\n\n", title)

			for _, item := range entries {
				entry := item.(map[string]interface{})
				fmt.Printf("%3.0f. %-20s Lv %.0f  %8.0f XP\n",
					entry["rank"].(float64),
					entry["username"].(string),
					entry["level"].(float64),
					entry["score"].(float64))
			}

			if me, ok := data["me"].(map[string]interface{}); ok {
				fmt.Printf("\nYou: rank %.0f of %.0f (%.0f XP)\n",
					me["rank"].(float64), me["total_users"].(float64), me["score"].(float64))
			}
		} else {
			errorData := result["error"].(map[string]interface{})
			return fmt.Errorf("failed: %v", errorData["message"])
		}

		return nil
	},
}

func init() {
	topCmd.Flags().String("metric", "xp", "Ranking metric (xp or weekly_xp)")
	topCmd.Flags().Int("limit", 10, "Number of entries to show")
	LeaderboardCmd.AddCommand(topCmd)
}
