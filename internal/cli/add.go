package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remaimber-it/flashcards/internal/source"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a question to the first writable question file",
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringP("question", "q", "", "Question text (required)")
	addCmd.Flags().StringP("answer", "a", "", "Expected answer (required)")
	addCmd.Flags().StringP("explanation", "e", "", "Shown when the answer is wrong")
	addCmd.MarkFlagRequired("question")
	addCmd.MarkFlagRequired("answer")
}

func runAdd(cmd *cobra.Command, args []string) error {
	question, _ := cmd.Flags().GetString("question")
	answer, _ := cmd.Flags().GetString("answer")
	explanation, _ := cmd.Flags().GetString("explanation")

	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return fmt.Errorf("question and answer cannot be blank")
	}

	a, err := openApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.quiz.AddQuestion(cmd.Context(), source.Draft{
		Question:    question,
		Answer:      answer,
		Explanation: explanation,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added question %s\n", q.ID)
	return nil
}
