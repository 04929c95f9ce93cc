package quiz

import "github.com/spf13/cobra"

var QuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Quiz commands",
	Long:  "Browse quizzes and review your attempt history",
}
