package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starboard-re/comps-cli/internal/results"
)

var (
	resultsExpand    []string
	resultsExpandAll bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the results of the last search",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		view, err := results.Load(ctx, st)
		if err != nil {
			// No session is a navigational guard, not a failure:
			// point back at the search form.
			if errors.Is(err, results.ErrSessionMissing) {
				fmt.Fprintln(cmd.OutOrStdout(), "No search session found.")
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'comps search' to find comparable properties first.")
				return nil
			}
			return err
		}

		if resultsExpandAll {
			view.ExpandAll()
		}
		for _, id := range resultsExpand {
			view.Toggle(id)
		}

		view.Render(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'comps search' to start a new search.")
		return nil
	},
}

func init() {
	resultsCmd.Flags().StringSliceVar(&resultsExpand, "expand", nil, "comparable ids to show with a full score breakdown")
	resultsCmd.Flags().BoolVar(&resultsExpandAll, "expand-all", false, "show the full score breakdown for every comparable")
	rootCmd.AddCommand(resultsCmd)
}
