package commands

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kanboard/cmd/kanboard/output"
	"kanboard/internal/application/usecase"
	"kanboard/internal/daemon"
	"kanboard/internal/di"
	"kanboard/internal/infrastructure/config"
	"kanboard/internal/infrastructure/logging"
)

const daemonPingTimeout = 500 * time.Millisecond

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFormat string
	configPath   string
	quiet        bool
	localOnly    bool
	verbose      bool

	// Shared instances
	cfg       *config.Config
	loader    *config.Loader
	printer   *output.Printer
	formatter *output.Formatter

	service      usecase.BoardService
	daemonClient *daemon.Client
	cleanup      func()
)

var multiSpaceRE = regexp.MustCompile(`\s{2,}`)
var cardIDLikeRE = regexp.MustCompile(`^[0-9a-f]{4,}(-[0-9a-f]+)*$`)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kanboard",
	Short: "Terminal Kanban board",
	Long: `kanboard keeps a single Kanban board of cards arranged in columns.

Cards are picked up and dropped between columns from the interactive TUI,
or moved with the commands below. When the kanboard daemon is running every
command goes through it, so all clients see the same board.

Examples:
  # Launch interactive TUI
  kanboard
  kanboard tui

  # Show the board
  kanboard board show

  # Add a card to a column
  kanboard card add todo "Fix login bug"

  # Move a card to the top of another column
  kanboard card move 3f2a doing --index 0

  # Delete the first card printed by a filtered list
  kanboard card list --column done -o tsv | head -1 | kanboard card delete`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			home, herr := os.UserHomeDir()
			if herr != nil {
				return fmt.Errorf("failed to get home directory: %w", herr)
			}
			loader = config.NewLoaderAt(configPath, home)
		} else {
			loader, err = config.NewLoader()
			if err != nil {
				return fmt.Errorf("failed to create config loader: %w", err)
			}
		}

		cfg, err = loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.DefaultPrinter()
		printer.SetQuiet(quiet)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if cleanup != nil {
			cleanup()
		}
		printer := output.NewPrinter(os.Stderr)
		printer.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, tsv")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&localOnly, "local", false, "Open the board directly even if the daemon is running")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log storage activity to stderr")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return nil
		}
		if len(args) > 0 {
			return cmd.Help()
		}
		return tuiCmd.RunE(cmd, args)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("kanboard version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}

// boardService returns the daemon client when a daemon answers on the
// configured socket, and otherwise opens the board in-process
func boardService(ctx context.Context) (usecase.BoardService, error) {
	if service != nil {
		return service, nil
	}

	if !localOnly {
		client := daemon.NewClient(cfg.Daemon.SocketPath())
		pingCtx, cancel := context.WithTimeout(ctx, daemonPingTimeout)
		err := client.Ping(pingCtx)
		cancel()
		if err == nil {
			daemonClient = client
			service = client
			return service, nil
		}
	}

	level := "warn"
	if verbose {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(level, cfg.Logging.Development)
	if err != nil {
		return nil, err
	}

	container, closeContainer, err := di.InitializeContainer(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	cleanup = func() {
		closeContainer()
		_ = logger.Sync()
	}
	service = container.Service
	return service, nil
}

// warnIfDirty tells the user when the last write did not reach storage
func warnIfDirty(ctx context.Context, svc usecase.BoardService) {
	board, err := svc.GetBoard(ctx)
	if err != nil || !board.Dirty {
		return
	}
	printer.Warning("The board could not be written to storage; see the logs (--verbose) for details")
}

func resolveArgs(args []string, expected int) ([]string, error) {
	if len(args) >= expected {
		return args, nil
	}

	pipedArgs, err := readPipedArgs(expected)
	if err != nil {
		return nil, err
	}

	needed := expected - len(args)
	available := len(args) + len(pipedArgs)
	if len(pipedArgs) < needed {
		return nil, fmt.Errorf("accepts %d arg(s), received %d", expected, available)
	}

	resolved := append([]string{}, pipedArgs[:needed]...)
	resolved = append(resolved, args...)
	return resolved, nil
}

func readPipedArgs(expected int) ([]string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	return extractArgsFromInput(data, expected), nil
}

// extractArgsFromInput picks the best-scoring line of piped input. TSV
// output from "card list" scores highest.
func extractArgsFromInput(data []byte, expected int) []string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	bestScore := -1
	var best []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, score := parsePipedLine(line, expected)
		if len(tokens) < expected {
			continue
		}

		if score > bestScore {
			bestScore = score
			best = tokens
		}
	}

	return best
}

func parsePipedLine(line string, expected int) ([]string, int) {
	if strings.Contains(line, "\t") {
		return splitFields(line, func(r rune) bool { return r == '\t' }), 3
	}
	if multiSpaceRE.MatchString(line) {
		return multiSpaceRE.Split(line, -1), 2
	}

	fields := strings.Fields(line)
	if expected == 1 && len(fields) > 1 {
		if cardIDLikeRE.MatchString(fields[0]) {
			return []string{fields[0]}, 2
		}
		return []string{line}, 1
	}

	return fields, 1
}

func splitFields(input string, split func(rune) bool) []string {
	fields := strings.FieldsFunc(input, split)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		out = append(out, field)
	}
	return out
}
