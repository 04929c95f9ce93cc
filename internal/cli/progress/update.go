package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update topic progress",
	Long:  "Record how far you have gotten through a topic. Reaching 100% completes the topic and awards its XP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetString("topic-id")
		percent, _ := cmd.Flags().GetInt("percent")
		completed, _ := cmd.Flags().GetBool("completed")

		if topicID == "" {
			return fmt.Errorf("--topic-id is required")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		body := map[string]interface{}{
			"topic_id":  topicID,
			"percent":   percent,
			"completed": completed,
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/progress/topics",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("PUT", serverURL, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})
			row := data["progress"].(map[string]interface{})

			fmt.Printf("✓ Progress updated!\n")
			fmt.Printf("  Topic ID: %s\n", topicID)
			fmt.Printf("  Percent: %.0f%%\n", row["percent"].(float64))
			if done, _ := row["completed"].(bool); done {
				fmt.Println("  Status: completed 🎉")
			}

			if award, ok := data["award"].(map[string]interface{}); ok {
				if applied, _ := award["applied"].(bool); applied {
					fmt.Printf("\n  XP awarded: %.0f\n", award["xp_awarded"].(float64))
					fmt.Printf("  Total XP: %.0f (level %.0f)\n",
						award["xp_total"].(float64), award["level"].(float64))
					if up, _ := award["leveled_up"].(bool); up {
						fmt.Println("  ⬆ Level up!")
					}
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
	updateCmd.Flags().String("topic-id", "", "Topic ID")
	updateCmd.Flags().Int("percent", 0, "Completion percent (0-100)")
	updateCmd.Flags().Bool("completed", false, "Mark the topic completed")
	ProgressCmd.AddCommand(updateCmd)
}
