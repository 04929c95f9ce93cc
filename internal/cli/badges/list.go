package badges

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
	Short: "List your earned badges",
	Long:  "View the badges you have unlocked and when you earned them",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/badges",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get badges: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})
			earned := data["badges"].([]interface{})

			if len(earned) == 0 {
				fmt.Println("\nNo badges yet. Complete topics and quizzes to earn some!")
				return nil
			}

			fmt.Printf("\nEarned Badges (%d):\n\n", len(earned))

			for _, item := range earned {
				row := item.(map[string]interface{})
				badge := row["badge"].(map[string]interface{})
				fmt.Printf("%s %s\n", badge["icon"], badge["name"])
				fmt.Printf("   %s\n", badge["description"])
				fmt.Printf("   Earned: %s\n\n", row["earned_at"].(string))
			}
		} else {
			errorData := result["error"].(map[string]interface{})
			return fmt.Errorf("failed: %v", errorData["message"])
		}

		return nil
	},
}

func init() {
	BadgesCmd.AddCommand(listCmd)
}
