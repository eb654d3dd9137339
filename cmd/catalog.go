package cmd

import (
	"fmt"
	"log/slog"

	"recitesync/internal/config"
	"recitesync/internal/store"
	"recitesync/internal/timing"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <timings.json>",
	Short: "Load a timing asset into the SQLite catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := timing.LoadFile(args[0])
		if err != nil {
			return err
		}
		for _, d := range idx.Diagnostics() {
			slog.Warn("verse imported without words", "verse", d.String())
		}

		cat, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer cat.Close()

		n, err := cat.ImportIndex(idx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d verses of %s\n", n, config.ChapterName(idx.Surah()))
		return nil
	},
}

var surahsCmd = &cobra.Command{
	Use:   "surahs",
	Short: "List the chapters in the SQLite catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer cat.Close()

		list, err := cat.Surahs()
		if err != nil {
			return err
		}
		for _, s := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d %s\n", s, config.ChapterName(s))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd, surahsCmd)
}
