package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrscout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Writes an example config.toml. The default path is $XDG_CONFIG_HOME/arrscout/config.toml.

With --from-current, writes the effective configuration instead: the loaded
file (or the built-in defaults) with environment variables resolved and
every default filled in. Resolved secrets are written in plain text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Prints the loaded configuration as TOML with defaults applied. API keys and cookies are masked.",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without scraping.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configInitCmd.Flags().Bool("from-current", false, "Write the effective configuration instead of the example")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")
	fromCurrent, _ := cmd.Flags().GetBool("from-current")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	write := config.WriteDefault
	if fromCurrent {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		write = cfg.Write
	}
	if err := write(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	return cfg.Redacted().Encode(cmd.OutOrStdout())
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Log:        %s", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, " (file: %s)", cfg.Log.File)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Database:   %s\n", cfg.Database.Path)

	var enabled, disabled []string
	for name, src := range cfg.Sources {
		if src.Enabled {
			enabled = append(enabled, name)
		} else {
			disabled = append(disabled, name)
		}
	}
	sort.Strings(enabled)
	sort.Strings(disabled)
	fmt.Fprintf(w, "  Sources:    %s\n", strings.Join(enabled, ", "))
	if len(disabled) > 0 {
		fmt.Fprintf(w, "  Disabled:   %s\n", strings.Join(disabled, ", "))
	}

	s := cfg.Scrape
	fmt.Fprintf(w, "  Retries:    %d (delay %s x attempt)\n", s.RetryAttempts, s.RetryDelay)
	fmt.Fprintf(w, "  Paging:     %d pages, stop after %d misses\n", s.MaxPages, s.MissThreshold)
	fmt.Fprintf(w, "  Jobs:       %d workers, %s timeout\n", s.JobWorkers, s.JobTimeout)

	if cfg.Wordlists.English != "" || cfg.Wordlists.Banned != "" {
		fmt.Fprintf(w, "  Wordlists:  english=%s banned=%s\n",
			valueOrEmpty(cfg.Wordlists.English), valueOrEmpty(cfg.Wordlists.Banned))
	}
}
