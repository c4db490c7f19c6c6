package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/feeoracao/oracao/internal/liturgy"
	"github.com/feeoracao/oracao/utils"
)

var (
	liturgyCmd = &cobra.Command{
		Use:     "liturgy [DD/MM/YYYY]",
		Short:   "Show the saint and liturgical season of a day",
		Example: paragraph("oracao liturgy\noracao liturgy 25/12/2026"),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := liturgy.FormatDate(time.Now())
			if len(args) == 1 {
				t, err := liturgy.ParseDate(args[0])
				if err != nil {
					return err
				}
				date = liturgy.FormatDate(t)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			day := a.gemini.DailyInfo(cmd.Context(), date)
			return writeDay(cmd.OutOrStdout(), date, day, int(width)) //nolint:gosec
		},
	}

	reflectCmd = &cobra.Command{
		Use:               "reflect ID",
		Short:             "Ask for a short spiritual reflection on a prayer",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePrayerIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			p, err := a.catalog.Prayer(args[0])
			if err != nil {
				return err
			}
			text := a.gemini.Reflection(cmd.Context(), p.Title)
			return render(cmd.OutOrStdout(), fmt.Sprintf("# %s\n\n%s\n", p.Title, text))
		},
	}
)

// writeDay prints a liturgical day with its colour badge.
func writeDay(w io.Writer, date string, day liturgy.Day, width int) error {
	info := liturgy.Palette(day.Liturgical())
	badge := lipgloss.NewStyle().
		Foreground(info.Foreground).
		Background(info.Background).
		Bold(true).
		Padding(0, 1).
		Render(info.Label)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", subtle(date), badge)
	fmt.Fprintf(&b, "%s\n", heading(day.Saint))
	fmt.Fprintf(&b, "%s\n\n", day.Season)
	fmt.Fprintf(&b, "%s\n", utils.Wrap(day.Message, width))

	_, err := io.WriteString(w, paragraph(b.String())+"\n")
	return err
}
