// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements promptctl, the offline companion of the PromptDeck
// server. It builds and splits prompts from YAML form files without a
// database or an AI provider.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"promptdeck/internal/prompt"
)

// envPrefix scopes environment overrides, e.g. PROMPTCTL_MAX=2000.
const envPrefix = "PROMPTCTL"

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// NewRootCmd builds the promptctl command tree. Each call gets its own
// viper instance so commands can be run side by side in tests.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "promptctl",
		Short:         "Build and split PromptDeck prompts from the command line",
		Long:          "promptctl turns website and esoteric form files into prompts, splits long prompts into pasteable parts and lists the option catalogs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.promptctl.yaml)")
	root.PersistentFlags().Int("max", prompt.DefaultPartSize, "maximum part length in characters")
	root.PersistentFlags().String("format", formatText, "output format: text or json")
	v.BindPFlag("max", root.PersistentFlags().Lookup("max"))
	v.BindPFlag("format", root.PersistentFlags().Lookup("format"))

	root.AddCommand(
		newBuildCmd(v),
		newImagePromptCmd(v),
		newSplitCmd(v),
		newCatalogCmd(v),
	)
	return root
}

// Execute runs promptctl and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "promptctl:", err)
		os.Exit(1)
	}
}

func loadConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".promptctl")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// settings are the resolved values shared by every command.
type settings struct {
	max    int
	format string
}

func resolve(v *viper.Viper) (settings, error) {
	s := settings{max: v.GetInt("max"), format: strings.ToLower(v.GetString("format"))}
	if s.max < 1 {
		return s, fmt.Errorf("--max must be positive, got %d", s.max)
	}
	if s.format != formatText && s.format != formatJSON {
		return s, fmt.Errorf("--format must be text or json, got %q", s.format)
	}
	return s, nil
}

// readForm decodes a YAML form file. "-" reads standard input. Unknown keys
// are rejected so typos don't silently drop options.
func readForm(cmd *cobra.Command, path string, dst any) error {
	if path == "" {
		return errors.New("--form is required")
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open form: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("form %s is empty", path)
		}
		return fmt.Errorf("decode form %s: %w", path, err)
	}
	return nil
}

// formError renders validation failures one field per line.
func formError(err error) error {
	var verr prompt.ValidationErrors
	if !errors.As(err, &verr) {
		return err
	}
	fields := make([]string, 0, len(verr))
	for f := range verr {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid form:")
	for _, f := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", f, verr[f])
	}
	return errors.New(b.String())
}

// printParts writes prompt parts. Text output separates multiple parts with
// a numbered header; JSON output is a single object.
func printParts(w io.Writer, format, text string, parts []string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"prompt": text,
			"parts":  parts,
			"count":  len(parts),
		})
	}

	if len(parts) == 1 {
		_, err := fmt.Fprintln(w, parts[0])
		return err
	}
	for i, p := range parts {
		if _, err := fmt.Fprintf(w, "----- part %d/%d -----\n%s\n", i+1, len(parts), p); err != nil {
			return err
		}
	}
	return nil
}
