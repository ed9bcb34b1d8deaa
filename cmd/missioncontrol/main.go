package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"missioncontrol/internal/core"
	"missioncontrol/internal/repository"
	"missioncontrol/pkg/schema"

	"github.com/spf13/cobra"
)

func main() {
	loadDotEnv(".env") // load .env file if present (gitignored)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads a .env file and sets any variables that aren't already
// set in the environment. Lines are KEY=VALUE (or KEY="VALUE"). Comments (#)
// and blanks are skipped.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // no .env file, that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		// Don't overwrite existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "missioncontrol",
	Short: "Self-service roles and channels for a Discord community",
	Long: "missioncontrol runs the Mission Control bot: an interactive menu and slash commands " +
		"that let members manage their membership type, roles, projects, channels and games.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, registerCmd, introCmd, layoutCmd)
}

// setup loads config, logger and layout shared by the bot commands. The
// returned closer flushes the log file, if any.
func setup(requireAuth bool) (*core.Config, core.Logger, *schema.Layout, func(), error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if requireAuth {
		if err := cfg.Validate(); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closer = func() { _ = f.Close() }
	}
	logger := core.NewLogger(cfg.LogLevel, w)

	layout, err := repository.NewRepository(cfg.LayoutPath).ReadLayout()
	if err != nil {
		closer()
		return nil, nil, nil, nil, fmt.Errorf("load layout: %w", err)
	}

	return cfg, logger, layout, closer, nil
}
