package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"kanboard/cmd/kanboard/output"
	"kanboard/internal/infrastructure/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage kanboard configuration settings.

Configuration is stored in YAML format at:
  ~/.config/kanboard/config.yml

The KANBOARD_CONFIG environment variable or the --config flag point to
another file.

Examples:
  # Show current configuration
  kanboard config show

  # Edit config in editor
  kanboard config edit

  # Show config file location
  kanboard config path

  # Reset config to defaults
  kanboard config reset`,
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration settings, including defaults for
values missing from the file.

Examples:
  # Show in YAML format (default)
  kanboard config show

  # Show in JSON format
  kanboard config show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatter.Format() == output.FormatText {
			return output.NewFormatter(output.FormatYAML, os.Stdout).Print(cfg)
		}
		return formatter.Print(cfg)
	},
}

// configEditCmd opens the config file in an editor
var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit config in editor",
	Long: `Open the configuration file in your default editor.

The editor is determined by the EDITOR environment variable (default: vi).
A running daemon picks up column changes without a restart.

Examples:
  kanboard config edit
  EDITOR=nano kanboard config edit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := loader.GetConfigPath()

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		printer.Info("Opening config file: %s", path)
		printer.Subtle("Editor: %s", editor)

		editorCmd := exec.Command(editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr

		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			printer.Warning("The edited config does not load: %v", err)
			return nil
		}
		printer.Success("Config file edited")
		return nil
	},
}

// configPathCmd shows the config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(loader.GetConfigPath())
		return nil
	},
}

// configResetCmd resets the config to defaults
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset config to defaults",
	Long: `Reset the configuration to default values.

WARNING: This will overwrite your current configuration.

Examples:
  # Reset config (with confirmation)
  kanboard config reset

  # Reset without confirmation
  kanboard config reset --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := loader.GetConfigPath()

		if !force {
			printer.Warning("About to reset configuration to defaults")
			printer.Warning("Current config: %s", path)
			fmt.Print("\nType 'yes' to confirm: ")

			var confirmation string
			fmt.Scanln(&confirmation)

			if confirmation != "yes" {
				printer.Info("Reset cancelled")
				return nil
			}
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		if err := loader.Save(config.Default(home)); err != nil {
			return fmt.Errorf("failed to reset config: %w", err)
		}

		printer.Success("Config reset: %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().Bool("force", false, "Reset without confirmation")
}
