package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// uploadWorkspace is a flag for the upload command.
var uploadWorkspace string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document",
	Long: `Extracts text from a PDF or plain text file, splits it into chunks,
embeds them, and stores everything for later questioning.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadWorkspace, "workspace", "w", "", "workspace ID to add the document to")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	media, err := mediaForPath(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	doc, err := ingestService.Ingest(ctx, currentUser, domain.Upload{
		Name:        filepath.Base(path),
		Media:       media,
		Data:        data,
		WorkspaceID: uploadWorkspace,
	})
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	cmd.Printf("Uploaded %s\n", doc.Name)
	cmd.Printf("  ID: %s\n", doc.ID)
	if doc.WorkspaceID != nil {
		cmd.Printf("  Workspace: %s\n", *doc.WorkspaceID)
	}
	return nil
}

// mediaForPath maps a file extension to a supported media kind.
func mediaForPath(path string) (domain.MediaType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return domain.MediaPDF, nil
	case ".txt", ".md", ".text":
		return domain.MediaText, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
	}
}
