package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/icons"
)

var (
	iconOut        string
	iconRegenerate bool

	iconCmd = &cobra.Command{
		Use:       "icon app|support",
		Short:     "Save the generated app or support icon",
		Long:      paragraph(fmt.Sprintf("\nSave an icon. Icons are generated once and kept; use --regenerate to %s one.", keyword("create a new"))),
		Example:   paragraph("oracao icon app\noracao icon support --out gratidao.png"),
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(gemini.AppIcon), string(gemini.SupportIcon)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := gemini.IconKind(args[0])
			if _, err := icons.Key(kind); err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			var uri string
			if iconRegenerate {
				uri, err = a.icons.Regenerate(cmd.Context(), kind)
			} else {
				uri, err = a.icons.Get(cmd.Context(), kind)
			}
			if err != nil {
				return err
			}
			return writeIcon(cmd.OutOrStdout(), kind, uri, iconOut)
		},
	}
)

func init() {
	iconCmd.Flags().StringVarP(&iconOut, "out", "o", "", "file to write (default oracao-KIND.EXT)")
	iconCmd.Flags().BoolVarP(&iconRegenerate, "regenerate", "r", false, "generate a new icon")
}

// writeIcon decodes a data URI to path, naming the file after the icon
// kind and image type when path is empty.
func writeIcon(w io.Writer, kind gemini.IconKind, uri, path string) error {
	mime, data, err := icons.DecodeDataURI(uri)
	if err != nil {
		return err
	}
	if path == "" {
		path = fmt.Sprintf("%s-%s%s", appName, kind, icons.Extension(mime))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write icon: %w", err)
	}
	_, err = fmt.Fprintf(w, "Wrote %s (%s, %s)\n", path, mime, humanize.Bytes(uint64(len(data))))
	return err
}
