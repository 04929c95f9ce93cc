package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show your progress report",
	Long:  "View skill scores, recent quiz accuracy, and estimated time invested",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/progress/report",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get report: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			report := result["data"].(map[string]interface{})
			summary := report["summary"].(map[string]interface{})

			fmt.Println("\nProgress Report")
			fmt.Println(strings.Repeat("-", 40))
			fmt.Printf("Topics completed: %.0f/%.0f\n",
				summary["completed_topics"].(float64), summary["total_topics"].(float64))
			fmt.Printf("Quiz attempts:    %.0f (avg score %.1f%%)\n",
				summary["total_attempts"].(float64), summary["average_score"].(float64))
			fmt.Printf("Time invested:    %.1f hours\n", summary["total_hours"].(float64))

			if skills, ok := report["skills"].([]interface{}); ok && len(skills) > 0 {
				fmt.Println("\nSkills:")
				for _, item := range skills {
					skill := item.(map[string]interface{})
					score := int(skill["score"].(float64))
					bar := strings.Repeat("█", score/5)
					fmt.Printf("  %-24s %3d %s\n", skill["topic_title"].(string), score, bar)
				}
			}

			if trend, ok := report["accuracy_trend"].([]interface{}); ok && len(trend) > 0 {
				fmt.Println("\nRecent accuracy:")
				for _, item := range trend {
					point := item.(map[string]interface{})
					fmt.Printf("  %-7s %5.1f%%\n", point["day"].(string), point["accuracy"].(float64))
				}
			}
		} else {
			errorData := result["error"].(map[string]interface{})
			return fmt.Errorf("failed: %v", errorData["message"])
		}

		return nil
	},
}

func init() {
	ProgressCmd.AddCommand(reportCmd)
}
