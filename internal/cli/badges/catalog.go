package badges

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the badge catalog",
	Long:  "View every badge the platform offers and what it takes to earn it",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: learnhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/badges/catalog",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get catalog: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] == true {
			data := result["data"].(map[string]interface{})
			catalog := data["badges"].([]interface{})

			fmt.Printf("\nBadge Catalog (%d):\n\n", len(catalog))

			for _, item := range catalog {
				badge := item.(map[string]interface{})
				fmt.Printf("%s %s\n", badge["icon"], badge["name"])
				fmt.Printf("   %s\n\n", badge["description"])
			}
		} else {
			errorData := result["error"].(map[string]interface{})
			return fmt.Errorf("failed: %v", errorData["message"])
		}

		return nil
	},
}

func init() {
	BadgesCmd.AddCommand(catalogCmd)
}
