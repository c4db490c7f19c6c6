package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/share"
)

var (
	copyPrayer bool

	prayersCmd = &cobra.Command{
		Use:     "prayers [QUERY]",
		Aliases: []string{"ls"},
		Short:   "List the prayers, optionally filtered",
		Example: paragraph("oracao prayers\noracao prayers miguel"),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPrayers(cmd.OutOrStdout(), catalog.Default(), strings.Join(args, " "))
		},
	}

	prayerCmd = &cobra.Command{
		Use:               "prayer ID",
		Short:             "Show a prayer",
		Example:           paragraph("oracao prayer pai-nosso\noracao prayer ave-maria --copy"),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePrayerIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.Default().Prayer(args[0])
			if err != nil {
				return err
			}
			if copyPrayer {
				if err := (share.SystemClipboard{}).WriteAll(share.CopyText(p)); err != nil {
					return fmt.Errorf("unable to copy: %w", err)
				}
				log.Debug("Copied prayer", "id", p.ID)
			}
			return render(cmd.OutOrStdout(), p.Markdown())
		},
	}

	rosariesCmd = &cobra.Command{
		Use:   "rosaries",
		Short: "List the rosary guides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRosaries(cmd.OutOrStdout(), catalog.Default())
		},
	}

	rosaryCmd = &cobra.Command{
		Use:   "rosary ID",
		Short: "Show a rosary guide step by step",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			var ids []string
			for _, r := range catalog.Default().Rosaries() {
				ids = append(ids, r.ID)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := catalog.Default().Rosary(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.Markdown())
		},
	}
)

func init() {
	prayerCmd.Flags().BoolVarP(&copyPrayer, "copy", "c", false, "also copy the prayer to the clipboard")
}

func completePrayerIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, p := range catalog.Default().Prayers() {
		ids = append(ids, p.ID+"\t"+p.Title)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// listPrayers prints prayers grouped by category, or the search results
// for query in match order.
func listPrayers(w io.Writer, c *catalog.Catalog, query string) error {
	if query != "" {
		found := c.Search(query)
		if len(found) == 0 {
			_, err := fmt.Fprintf(w, "No prayer matches %q.\n", query)
			return err
		}
		return writeIDs(w, found, idWidth(found))
	}

	n := idWidth(c.Prayers())
	for i, cat := range c.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, heading(cat))
		if err := writeIDs(w, c.ByCategory(cat), n); err != nil {
			return err
		}
	}
	return nil
}

func listRosaries(w io.Writer, c *catalog.Catalog) error {
	rosaries := c.Rosaries()
	n := 0
	for _, r := range rosaries {
		n = max(n, runewidth.StringWidth(r.ID))
	}
	for _, r := range rosaries {
		_, err := fmt.Fprintf(w, "  %s  %s %s\n",
			keyword(runewidth.FillRight(r.ID, n)), r.Title,
			subtle(fmt.Sprintf("(%d passos)", len(r.Steps))))
		if err != nil {
			return err
		}
	}
	return nil
}

func writeIDs(w io.Writer, prayers []catalog.Prayer, n int) error {
	for _, p := range prayers {
		if _, err := fmt.Fprintf(w, "  %s  %s\n", keyword(runewidth.FillRight(p.ID, n)), p.Title); err != nil {
			return err
		}
	}
	return nil
}

func idWidth(prayers []catalog.Prayer) int {
	n := 0
	for _, p := range prayers {
		n = max(n, runewidth.StringWidth(p.ID))
	}
	return n
}
