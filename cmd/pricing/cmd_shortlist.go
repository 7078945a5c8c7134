package main

import (
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/pricingexcellence/pricing/internal/webapi"
	"github.com/spf13/cobra"
)

func newShortlistCommand(a *app) *cobra.Command {
	var (
		s      recommend.Situation
		format string
	)

	cmd := &cobra.Command{
		Use:   "shortlist",
		Short: "Quick pricing model shortlist from three answers",
		Long: `Quick, unranked shortlist of pricing models from three answers:
outcome measurability, client risk tolerance and scope certainty.`,
		Example: `  pricing shortlist --outcome-measurability high --client-risk-tolerance low --scope-certainty clear`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON)
			if err != nil {
				return err
			}
			ids, err := recommend.Shortlist(s)
			if err != nil {
				return err
			}
			c, err := a.Catalog()
			if err != nil {
				return err
			}

			refs := webapi.RefsFor(c, ids)
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), webapi.ShortlistResponse{Models: refs})
			}
			t := &table{header: []string{"MODEL", "TITLE"}}
			for _, r := range refs {
				t.add(r.ID, r.Title)
			}
			t.write(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar((*string)(&s.OutcomeMeasurability), flagName(string(recommend.FieldOutcomeMeasurability)), "", "Can outcomes be measured and attributed? (low|medium|high)")
	cmd.Flags().StringVar((*string)(&s.ClientRiskTolerance), flagName(string(recommend.FieldClientRiskTolerance)), "", "Client risk tolerance (low|medium|high)")
	cmd.Flags().StringVar((*string)(&s.ScopeCertainty), flagName(string(recommend.FieldScopeCertainty)), "", "Scope certainty (clear|moderate|uncertain)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table or json")
	return cmd
}
