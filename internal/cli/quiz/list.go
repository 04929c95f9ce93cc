package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available quizzes",
	Long:  "View all quizzes with question counts, time limits, and XP rewards",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetString("topic-id")

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		path := "/api/v1/quizzes"
		if topicID != "" {
			path = "/api/v1/topics/" + topicID + "/quizzes"
		}
		serverURL := fmt.Sprintf("http://%s:%d%s",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"), path)

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to list quizzes: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})
			quizzes := data["quizzes"].([]interface{})

			fmt.Printf("\nQuizzes (%d):\n\n", len(quizzes))

			for i, item := range quizzes {
				quiz := item.(map[string]interface{})
				fmt.Printf("%d. %s\n", i+1, quiz["title"].(string))
				fmt.Printf("   ID: %s\n", quiz["id"].(string))
				fmt.Printf("   Questions: %.0f\n", quiz["question_count"].(float64))
				fmt.Printf("   Time limit: %.0fs\n", quiz["time_limit_seconds"].(float64))
				fmt.Printf("   Reward: %.0f XP (pass at %.0f%%)\n",
					quiz["xp_reward"].(float64), quiz["passing_score_percent"].(float64))
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
	listCmd.Flags().String("topic-id", "", "Only list quizzes for this topic")
	QuizCmd.AddCommand(listCmd)
}
