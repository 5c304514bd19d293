package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starboard-re/comps-cli/internal/form"
)

var (
	searchLatitude   string
	searchLongitude  string
	searchAddress    string
	searchSquareFeet string
	searchYearBuilt  string
	searchZoning     string
	searchN          int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for comparable properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		f := form.New(initClient(), st)
		for field, value := range map[string]string{
			form.FieldLatitude:       searchLatitude,
			form.FieldLongitude:      searchLongitude,
			form.FieldAddress:        searchAddress,
			form.FieldSquareFeet:     searchSquareFeet,
			form.FieldYearBuilt:      searchYearBuilt,
			form.FieldZoning:         searchZoning,
			form.FieldNumComparables: fmt.Sprint(searchN),
		} {
			if err := f.UpdateField(field, value); err != nil {
				return err
			}
		}

		sess, err := f.Submit(ctx)
		if err != nil {
			var vErr *form.ValidationError
			if errors.As(err, &vErr) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Missing information - please fill in all required fields:")
				for _, fe := range vErr.Fields {
					fmt.Fprintf(cmd.ErrOrStderr(), "  --%s: %s\n", flagName(fe.Field), fe.Reason)
				}
				return err
			}
			var sErr *form.SearchFailedError
			if errors.As(err, &sErr) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Search failed: unable to find comparable properties. Please try again.")
				return err
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Found %d comparable properties.\n", len(sess.Results))
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'comps results' to view them.")
		return nil
	},
}

// flagName maps a draft field name to its CLI flag spelling.
func flagName(field string) string {
	switch field {
	case form.FieldSquareFeet:
		return "square-feet"
	case form.FieldYearBuilt:
		return "year-built"
	default:
		return field
	}
}

func init() {
	searchCmd.Flags().StringVar(&searchLatitude, "latitude", "", "subject latitude in decimal degrees (required)")
	searchCmd.Flags().StringVar(&searchLongitude, "longitude", "", "subject longitude in decimal degrees (required)")
	searchCmd.Flags().StringVar(&searchAddress, "address", "", "subject address (display only)")
	searchCmd.Flags().StringVar(&searchSquareFeet, "square-feet", "", "subject building size in square feet (required)")
	searchCmd.Flags().StringVar(&searchYearBuilt, "year-built", "", "subject year built (required)")
	searchCmd.Flags().StringVar(&searchZoning, "zoning", "", "zoning: Industrial, Mixed-Use, Commercial or Other (required)")
	searchCmd.Flags().IntVarP(&searchN, "comparables", "n", 5, "number of comparables to request (1-10)")
	rootCmd.AddCommand(searchCmd)
}
