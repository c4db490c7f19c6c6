package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/internal/store"
	"github.com/feeoracao/oracao/utils"
)

var (
	entryTitle  string
	entryPrayer string

	journalCmd = &cobra.Command{
		Use:   "journal",
		Short: "Read and write the prayer journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return journalListCmd.RunE(cmd, nil)
		},
	}

	journalListCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			entries, err := a.journal.List()
			if err != nil {
				return err
			}
			return writeJournal(cmd.OutOrStdout(), entries, a.store.Stats(), time.Now())
		},
	}

	journalAddCmd = &cobra.Command{
		Use:     "add TEXT...",
		Short:   "Add a reflection",
		Example: paragraph(`oracao journal add "Obrigado pelo dia de hoje"` + "\n" + `oracao journal add --title Gratidão --prayer pai-nosso "Amém"`),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			if entryPrayer != "" {
				if _, err := a.catalog.Prayer(entryPrayer); err != nil {
					return err
				}
			}
			e, err := a.journal.AddLinked(entryTitle, strings.Join(args, " "), entryPrayer)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %s\n", keyword(e.Title), subtle(e.ID))
			return err
		},
	}

	journalRmCmd = &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a journal entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			e, ok := a.journal.Find(args[0])
			if !ok {
				return fmt.Errorf("no journal entry %s", args[0])
			}
			if err := a.journal.Delete(e.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", keyword(e.Title))
			return err
		},
	}
)

func init() {
	journalAddCmd.Flags().StringVarP(&entryTitle, "title", "t", "", "entry title")
	journalAddCmd.Flags().StringVarP(&entryPrayer, "prayer", "p", "", "id of the prayer the entry is about")
	journalCmd.AddCommand(journalListCmd, journalAddCmd, journalRmCmd)
}

// writeJournal prints entries with their age and a storage summary.
func writeJournal(w io.Writer, entries []journal.Entry, stats store.Stats, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, subtle("Nenhuma reflexão guardada ainda..."))
		return err
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", heading(e.Title), subtle(journal.Age(e, now)))
		if e.LinkedPrayerID != "" {
			fmt.Fprintf(w, "%s\n", subtle("↳ "+e.LinkedPrayerID))
		}
		fmt.Fprintf(w, "%s\n", utils.Wrap(e.Content, int(width))) //nolint:gosec
		fmt.Fprintf(w, "%s\n\n", subtle(e.ID))
	}

	_, err := fmt.Fprintf(w, "%s\n", subtle(fmt.Sprintf("%s · %s on disk",
		humanize.Comma(int64(len(entries)))+" entries",
		humanize.Bytes(uint64(max(0, stats.Size))), //nolint:gosec
	)))
	return err
}
