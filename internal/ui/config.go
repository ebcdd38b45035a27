package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/config"
	"github.com/javiermolinar/ponto/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  ponto config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Shift.TargetMinutes = promptDuration(reader, out, "Workday length", cfg.Shift.TargetMinutes)
	cfg.Shift.ToleranceMinutes = promptDuration(reader, out, "Tolerance", cfg.Shift.ToleranceMinutes)
	cfg.Shift.MinimumBreakMinutes = promptDuration(reader, out, "Minimum break", cfg.Shift.MinimumBreakMinutes)
	cfg.Input.StrictTimeFormat = promptBool(reader, out, "Reject malformed times", cfg.Input.StrictTimeFormat)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Notify.Enabled = promptBool(reader, out, "Clock-out notifications", cfg.Notify.Enabled)
	cfg.Notify.LeadMinutes = promptDuration(reader, out, "Notify this long before clock-out", cfg.Notify.LeadMinutes)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(out, "Current configuration:")
	_, _ = fmt.Fprintln(out, "──────────────────────")
	_, _ = fmt.Fprintln(out, "[shift]")
	_, _ = fmt.Fprintf(out, "  target_minutes        = %d (%s)\n", cfg.Shift.TargetMinutes, clock.FormatDuration(cfg.Shift.TargetMinutes))
	_, _ = fmt.Fprintf(out, "  tolerance_minutes     = %d (%s)\n", cfg.Shift.ToleranceMinutes, clock.FormatDuration(cfg.Shift.ToleranceMinutes))
	_, _ = fmt.Fprintf(out, "  minimum_break_minutes = %d (%s)\n", cfg.Shift.MinimumBreakMinutes, clock.FormatDuration(cfg.Shift.MinimumBreakMinutes))
	_, _ = fmt.Fprintln(out, "\n[input]")
	_, _ = fmt.Fprintf(out, "  strict_time_format    = %t\n", cfg.Input.StrictTimeFormat)
	_, _ = fmt.Fprintln(out, "\n[storage]")
	_, _ = fmt.Fprintf(out, "  db_path               = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(out, "\n[ui]")
	_, _ = fmt.Fprintf(out, "  theme                 = %s\n", cfg.UI.Theme)
	_, _ = fmt.Fprintln(out, "\n[notify]")
	_, _ = fmt.Fprintf(out, "  enabled               = %t\n", cfg.Notify.Enabled)
	_, _ = fmt.Fprintf(out, "  lead_minutes          = %d\n", cfg.Notify.LeadMinutes)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)
	input := strings.ToLower(readLine(reader))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(out, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

// promptDuration asks for a duration until one parses. EOF keeps current.
func promptDuration(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, clock.FormatDuration(current))
		if value == clock.FormatDuration(current) {
			return current
		}
		n, err := clock.ParseDuration(value)
		if err == nil {
			return n
		}
		_, _ = fmt.Fprintf(out, "  %v\n", err)
	}
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, out, label, strconv.FormatBool(current))
		switch strings.ToLower(value) {
		case "y", "yes", "true", "on":
			return true
		case "n", "no", "false", "off":
			return false
		}
		_, _ = fmt.Fprintf(out, "  Invalid answer %q. Use yes or no.\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		if value == strings.ToLower(current) {
			return theme.DefaultName
		}
		_, _ = fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
