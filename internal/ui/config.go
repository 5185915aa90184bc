package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  rocinante config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return editConfig(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

// configPrompt reads answers line by line from one reader.
type configPrompt struct {
	in  *bufio.Reader
	out io.Writer
}

func editConfig(in io.Reader, out io.Writer, path string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", path)
	}

	printConfig(out, cfg)

	p := configPrompt{in: bufio.NewReader(in), out: out}
	if !p.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Calendar.OverflowLimit = p.integer("Lanes per day before \"+N more\"", cfg.Calendar.OverflowLimit)
	cfg.Calendar.WeekStart = p.value("Week start (monday or sunday)", cfg.Calendar.WeekStart)
	cfg.Project.Default = p.value("Default project", cfg.Project.Default)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.Activity.BaseURL = p.value("Activity server URL (empty for local)", cfg.Activity.BaseURL)
	cfg.Activity.PageSize = p.integer("Activity page size", cfg.Activity.PageSize)
	cfg.Server.Addr = p.value("Server listen address", cfg.Server.Addr)
	cfg.Server.LogLevel = p.value("Server log level", cfg.Server.LogLevel)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[calendar]")
	fmt.Fprintf(w, "  overflow_limit = %d\n", cfg.Calendar.OverflowLimit)
	fmt.Fprintf(w, "  week_start     = %s\n", cfg.Calendar.WeekStart)
	fmt.Fprintln(w, "\n[project]")
	fmt.Fprintf(w, "  default        = %s\n", cfg.Project.Default)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[activity]")
	if cfg.UsesRemoteActivity() {
		fmt.Fprintf(w, "  base_url       = %s\n", cfg.Activity.BaseURL)
	}
	if cfg.Activity.Token != "" {
		fmt.Fprintln(w, "  token          = (set)")
	}
	fmt.Fprintf(w, "  page_size      = %d\n", cfg.Activity.PageSize)
	fmt.Fprintf(w, "  timeout        = %s\n", cfg.Activity.Timeout)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr           = %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  log_level      = %s\n", cfg.Server.LogLevel)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme          = %s\n", cfg.UI.Theme)
}

// readLine returns the next trimmed line and false once input is exhausted.
func (p configPrompt) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (p configPrompt) yesNo(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	input, _ := p.readLine()
	input = strings.ToLower(input)
	return input == "y" || input == "yes"
}

func (p configPrompt) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input, ok := p.readLine()
	if !ok || input == "" {
		return current
	}
	return input
}

func (p configPrompt) integer(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.out, "  Invalid number %q\n", value)
	}
}

func (p configPrompt) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
