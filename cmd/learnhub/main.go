package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"learnhub/internal/cli/auth"
	"learnhub/internal/cli/badges"
	cliconfig "learnhub/internal/cli/config"
	"learnhub/internal/cli/leaderboard"
	"learnhub/internal/cli/progress"
	"learnhub/internal/cli/quiz"
)

var rootCmd = &cobra.Command{
	Use:   "learnhub",
	Short: "LearnHub command line client",
	Long:  "Track topics, take quizzes, earn XP and badges, and climb the leaderboard from your terminal",
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".learnhub"))
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)

	// Missing config is fine, defaults apply until first login
	_ = viper.ReadInConfig()
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(cliconfig.ConfigCmd)
	rootCmd.AddCommand(progress.ProgressCmd)
	rootCmd.AddCommand(quiz.QuizCmd)
	rootCmd.AddCommand(leaderboard.LeaderboardCmd)
	rootCmd.AddCommand(badges.BadgesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
