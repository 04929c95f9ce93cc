package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "Show your quiz attempt history",
	Long:  "View past quiz attempts with scores, pass/fail results, and XP earned",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/quiz/attempts",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get attempts: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})
			attempts := data["attempts"].([]interface{})

			fmt.Printf("\nQuiz Attempts (%d):\n\n", len(attempts))

			for i, item := range attempts {
				attempt := item.(map[string]interface{})
				verdict := "✗ failed"
				if passed, _ := attempt["passed"].(bool); passed {
					verdict = "✓ passed"
				}
				fmt.Printf("%d. Quiz %s\n", i+1, attempt["quiz_id"].(string))
				fmt.Printf("   Score: %.1f%% (%.0f/%.0f) %s\n",
					attempt["score_percent"].(float64),
					attempt["correct_count"].(float64),
					attempt["total_questions"].(float64), verdict)
				fmt.Printf("   XP earned: %.0f\n", attempt["xp_earned"].(float64))
				fmt.Printf("   Time taken: %.0fs\n", attempt["time_taken_seconds"].(float64))
				fmt.Println()
			}
		} else {
			errorData := result["error"].(map[string]interface{})
			return fmt.Errorf("failed: %v", errorData["message"])
		}

		return nil
	},
}

func init() {
	QuizCmd.AddCommand(attemptsCmd)
}
