package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Claim the daily login bonus",
	Long:  "Claim today's login XP bonus and extend your learning streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/auth/daily-login",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("POST", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("daily check-in failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})

			if applied, _ := data["applied"].(bool); applied {
				fmt.Println("✓ Daily login bonus claimed!")
				fmt.Printf("  XP awarded: %.0f\n", data["xp_awarded"].(float64))
			} else {
				fmt.Println("Daily login bonus already claimed today.")
			}
			fmt.Printf("  Total XP: %.0f\n", data["xp_total"].(float64))
			fmt.Printf("  Level: %.0f\n", data["level"].(float64))
			fmt.Printf("  Streak: %.0f day(s) 🔥\n", data["streak_count"].(float64))

			if badges, ok := data["new_badges"].([]interface{}); ok && len(badges) > 0 {
				fmt.Println("\n🏅 New badges:")
				for _, item := range badges {
					badge := item.(map[string]interface{})
					fmt.Printf("  %s %s\n", badge["icon"], badge["name"])
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
	AuthCmd.AddCommand(checkinCmd)
}
