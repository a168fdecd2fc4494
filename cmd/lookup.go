package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/planning-cli/internal/site"
)

var (
	lookupLot      string
	lookupBoundary bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up planning attributes for a single lot",
	Long: `Resolves a lot identifier (section/plan-type/plan-number, e.g.
37/G/DP8324) through the ePlanning Portal and prints the assembled site
row as JSON. With --boundary, prints the raw boundary document instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		api := newAPIClient()

		if lookupBoundary {
			lot, err := api.LotInfo(ctx, lookupLot)
			if err != nil {
				return eris.Wrap(err, "lookup: resolve lot")
			}
			cadID, ok := lot.GetString("cadId")
			if !ok {
				return eris.Errorf("lookup: lot %q has no cadId", lookupLot)
			}
			boundary, err := api.Boundary(ctx, cadID)
			if err != nil {
				return eris.Wrap(err, "lookup: fetch boundary")
			}
			_, err = os.Stdout.Write(append(boundary, '\n'))
			return err
		}

		rec, err := site.NewAssembler(api).Build(ctx, lookupLot)
		if err != nil {
			return eris.Wrap(err, "lookup: build site record")
		}

		zap.L().Info("lookup complete",
			zap.String("lot_id", rec.LotID),
			zap.String("zoning", rec.Zoning),
			zap.String("council", rec.Council),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupLot, "lot", "", "lot identifier (required)")
	lookupCmd.Flags().BoolVar(&lookupBoundary, "boundary", false, "print the raw boundary document instead of the site row")
	_ = lookupCmd.MarkFlagRequired("lot")
	rootCmd.AddCommand(lookupCmd)
}
