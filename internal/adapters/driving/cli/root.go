// Package cli implements the command-line interface for studykit.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studykit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/studykit/internal/adapters/driven/embedding/huggingface"
	"github.com/custodia-labs/studykit/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/studykit/internal/adapters/driven/llm/groq"
	"github.com/custodia-labs/studykit/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
	"github.com/custodia-labs/studykit/internal/core/ports/driving"
	"github.com/custodia-labs/studykit/internal/core/services"
	"github.com/custodia-labs/studykit/internal/extract"
	"github.com/custodia-labs/studykit/internal/logger"
	"github.com/custodia-labs/studykit/internal/postprocessors/chunker"
	"github.com/custodia-labs/studykit/internal/throttle"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verboseFlag bool
	dataDirFlag string
	userFlag    string
)

// Services wired by initServices and shared by the commands.
var (
	store            *sqlite.Store
	configStore      driven.ConfigStore
	ingestService    driving.IngestService
	queryService     driving.QueryService
	documentService  driving.DocumentService
	workspaceService driving.WorkspaceService
	currentUser      string
)

var rootCmd = &cobra.Command{
	Use:   "studykit",
	Short: "Ask questions about your documents",
	Long: `studykit ingests PDF and plain text documents, indexes them with
vector embeddings, and answers questions grounded in their content.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.studykit/data)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "acting user ID (default from config or STUDYKIT_USER)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices wires storage, providers, and core services. Provider
// adapters are only constructed when their API key is available;
// ingestion and retrieval degrade gracefully without them.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg

	// Config commands only need the config store.
	if isConfigCommand(cmd) {
		return nil
	}

	creds := file.NewCredentials(cfg)

	currentUser = userFlag
	if currentUser == "" {
		currentUser = creds.UserID()
	}
	if currentUser == "" {
		return errors.New("no user configured: pass --user or set user.id in config")
	}

	store, err = sqlite.NewStore(dataDirFlag)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	var embedder driven.EmbeddingService
	if key := creds.HuggingFaceKey(); key != "" {
		embedder, err = huggingface.NewEmbeddingService(huggingface.Config{APIKey: key})
		if err != nil {
			return fmt.Errorf("configuring embedding service: %w", err)
		}
	} else {
		logger.Warn("No Hugging Face key configured; documents will be stored without embeddings")
	}

	var providers []driven.CompletionService
	if key := creds.GroqKey(); key != "" {
		groqSvc, err := groq.NewCompletionService(groq.Config{APIKey: key})
		if err != nil {
			return fmt.Errorf("configuring groq: %w", err)
		}
		providers = append(providers, groqSvc)
	}
	if key := creds.GoogleAIKey(); key != "" {
		geminiSvc, err := gemini.NewCompletionService(gemini.Config{APIKey: key})
		if err != nil {
			return fmt.Errorf("configuring gemini: %w", err)
		}
		providers = append(providers, geminiSvc)
	}

	docs := store.DocumentStore()
	chunks := store.ChunkStore()
	workspaces := store.WorkspaceStore()

	ingestService = services.NewIngestOrchestrator(
		docs,
		chunks,
		workspaces,
		extract.DefaultRegistry(),
		chunker.New(),
		embedder,
		throttle.New(throttle.DefaultBatchSize, throttle.DefaultInterval),
	)
	queryService = services.NewQueryService(
		docs,
		workspaces,
		services.NewRetriever(chunks, embedder),
		services.NewGenerator(providers...),
	)
	documentService = services.NewDocumentService(docs)
	workspaceService = services.NewWorkspaceService(workspaces, docs)

	return nil
}

// isConfigCommand reports whether cmd is `config` or one of its
// subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}
