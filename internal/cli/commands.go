// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promptdeck/internal/catalog"
	"promptdeck/internal/prompt"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a website prompt from a YAML form",
		Example: `promptctl build --form moonlit.yaml
promptctl build --form moonlit.yaml --max 2000 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(v)
			if err != nil {
				return err
			}
			var f prompt.WebsiteForm
			if err := readForm(cmd, form, &f); err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return formError(err)
			}

			text := prompt.Build(&f)
			return printParts(cmd.OutOrStdout(), s.format, text, prompt.Split(text, s.max))
		},
	}
	cmd.Flags().StringVarP(&form, "form", "f", "", "website form file, - for stdin (required)")
	return cmd
}

func newImagePromptCmd(v *viper.Viper) *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:     "image-prompt",
		Short:   "Build an esoteric image prompt from a YAML form",
		Example: `promptctl image-prompt --form priestess.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(v)
			if err != nil {
				return err
			}
			var f prompt.EsotericForm
			if err := readForm(cmd, form, &f); err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return formError(err)
			}

			text := prompt.BuildImagePrompt(&f)
			return printParts(cmd.OutOrStdout(), s.format, text, []string{text})
		},
	}
	cmd.Flags().StringVarP(&form, "form", "f", "", "esoteric form file, - for stdin (required)")
	return cmd
}

func newSplitCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "split [file]",
		Short: "Split text into parts no longer than --max characters",
		Long:  "Split reads the file (or standard input) and cuts it at paragraph, line, sentence or word boundaries. Concatenating the parts yields the input unchanged.",
		Example: `promptctl split --max 2000 prompt.txt
cat prompt.txt | promptctl split`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(v)
			if err != nil {
				return err
			}

			var data []byte
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			text := string(data)
			return printParts(cmd.OutOrStdout(), s.format, text, prompt.Split(text, s.max))
		},
	}
}

func newCatalogCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [name]",
		Short: "List the option catalogs, or the options of one catalog",
		Example: `promptctl catalog
promptctl catalog fonts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				all := catalog.All()
				if s.format == formatJSON {
					return writeJSON(out, all)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, c := range all {
					fmt.Fprintf(tw, "%s\t%s\t%d options\n", c.Name, c.Label, len(c.Options))
				}
				return tw.Flush()
			}

			c, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown catalog %q (run promptctl catalog to list them)", args[0])
			}
			if s.format == formatJSON {
				return writeJSON(out, c)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, o := range c.Options {
				fmt.Fprintf(tw, "%s\t%s\n", o.Value, o.Label)
			}
			return tw.Flush()
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
