package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Flags for the ask command. Exactly one of the two must be set.
var (
	askDocument  string
	askWorkspace string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a document or workspace",
	Long: `Answers a natural-language question using only the content of the
chosen document or workspace. Workspace answers cite their sources.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askDocument, "doc", "d", "", "document ID to ask about")
	askCmd.Flags().StringVarP(&askWorkspace, "workspace", "w", "", "workspace ID to ask about")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	if (askDocument == "") == (askWorkspace == "") {
		return errors.New("pass exactly one of --doc or --workspace")
	}

	question := args[0]
	ctx := context.Background()

	if askDocument != "" {
		answer, err := queryService.QueryDocument(ctx, currentUser, askDocument, question)
		if err != nil {
			return fmt.Errorf("failed to answer question: %w", err)
		}
		cmd.Println(answer.Text)
		return nil
	}

	answer, err := queryService.QueryWorkspace(ctx, currentUser, askWorkspace, question)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  - %s\n", src)
		}
	}
	return nil
}
