package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces",
	Long:  `Create, list, inspect, or delete workspaces grouping documents.`,
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceCreate,
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your workspaces",
	Args:  cobra.NoArgs,
	RunE:  runWorkspaceList,
}

var workspaceDocsCmd = &cobra.Command{
	Use:   "docs [workspace-id]",
	Short: "List documents in a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceDocs,
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete [workspace-id]",
	Short: "Delete an empty workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceDelete,
}

func init() {
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceDocsCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
	rootCmd.AddCommand(workspaceCmd)
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	ctx := context.Background()
	ws, err := workspaceService.Create(ctx, currentUser, args[0])
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	cmd.Printf("Created workspace %s\n", ws.Name)
	cmd.Printf("  ID: %s\n", ws.ID)
	return nil
}

func runWorkspaceList(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	ctx := context.Background()
	workspaces, err := workspaceService.List(ctx, currentUser)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	if len(workspaces) == 0 {
		cmd.Println("No workspaces yet.")
		return nil
	}

	cmd.Println("Workspaces:")
	cmd.Println()
	for i := range workspaces {
		cmd.Printf("  %s\n", workspaces[i].ID)
		cmd.Printf("    Name: %s\n", workspaces[i].Name)
		cmd.Println()
	}
	return nil
}

func runWorkspaceDocs(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	ctx := context.Background()
	docs, err := workspaceService.Documents(ctx, currentUser, args[0])
	if err != nil {
		return fmt.Errorf("failed to list workspace documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("Workspace is empty.")
		return nil
	}

	cmd.Printf("Documents in workspace %s:\n\n", args[0])
	for i := range docs {
		cmd.Printf("  %s  %s\n", docs[i].ID, docs[i].Name)
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runWorkspaceDelete(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	ctx := context.Background()
	if err := workspaceService.Delete(ctx, currentUser, args[0]); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	cmd.Printf("Workspace %s deleted.\n", args[0])
	return nil
}
