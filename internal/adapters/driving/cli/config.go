package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values.

Keys:
  providers.huggingface_key   Embedding provider API key
  providers.groq_key          Primary answer provider API key
  providers.google_ai_key     Fallback answer provider API key
  user.id                     Acting user identity`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Providers]")
	printKey(cmd, "Hugging Face", driven.ConfigKeyHuggingFace)
	printKey(cmd, "Groq", driven.ConfigKeyGroq)
	printKey(cmd, "Google AI", driven.ConfigKeyGoogleAI)
	cmd.Println()

	cmd.Println("[User]")
	if id := configStore.GetString(driven.ConfigKeyUserID); id != "" {
		cmd.Printf("  ID: %s\n", id)
	} else {
		cmd.Printf("  ID: (not set)\n")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		cmd.Println("(not set)")
		return nil
	}

	cmd.Printf("%v\n", val)
	return nil
}

// printKey prints a masked API key line.
func printKey(cmd *cobra.Command, label, key string) {
	if v := configStore.GetString(key); v != "" {
		cmd.Printf("  %s: %s\n", label, maskAPIKey(v))
	} else {
		cmd.Printf("  %s: (not set)\n", label)
	}
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", 4)
	}
	return key[:4] + "..." + key[len(key)-4:]
}
