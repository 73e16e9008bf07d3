package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a quiz in the terminal",
	RunE:  runQuiz,
}

func init() {
	quizCmd.Flags().Bool("no-color", false, "Disable coloured output")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.quiz.LoadQuestions(cmd.Context()); err != nil {
		return err
	}

	noColour, _ := cmd.Flags().GetBool("no-color")
	colour := !noColour && isatty.IsTerminal(os.Stdout.Fd())

	return newTerminal(a.quiz, cmd.InOrStdin(), cmd.OutOrStdout(), colour).Run(cmd.Context())
}
