package main

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/planning-cli/internal/site"
)

var (
	batchLots        string
	batchOutput      string
	batchFormat      string
	batchConcurrency int
	batchLimit       int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Look up a list of lots and export the site table",
	Long: `Reads lot identifiers from a file (one per line, blank lines and
# comments skipped), assembles a site row per lot, and exports the
accumulated table.

Examples:
  # CSV to stdout
  planning-cli batch --lots lots.txt

  # XLSX workbook
  planning-cli batch --lots lots.txt --output sites.xlsx --format xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		lots, err := readLotIDs(batchLots)
		if err != nil {
			return err
		}
		if batchLimit > 0 && batchLimit < len(lots) {
			lots = lots[:batchLimit]
		}
		zap.L().Info("batch: parsed lot list", zap.Int("lots", len(lots)))

		assembler := site.NewAssembler(newAPIClient())
		table := site.NewTable()

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		var succeeded, failed, duplicates atomic.Int64
		for _, lotID := range lots {
			lotID := lotID
			g.Go(func() error {
				if table.Contains(lotID) {
					duplicates.Add(1)
					zap.L().Info("batch: duplicate lot skipped", zap.String("lot_id", lotID))
					return nil
				}

				rec, buildErr := assembler.Build(gctx, lotID)
				if buildErr != nil {
					failed.Add(1)
					zap.L().Error("batch: lot failed",
						zap.String("lot_id", lotID),
						zap.Error(buildErr),
					)
					return nil // a failed lot never aborts the batch
				}

				if !table.Append(*rec) {
					duplicates.Add(1)
					zap.L().Info("batch: duplicate lot skipped", zap.String("lot_id", lotID))
					return nil
				}
				succeeded.Add(1)
				return nil
			})
		}
		_ = g.Wait()

		zap.L().Info("batch: complete",
			zap.Int("total", len(lots)),
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
			zap.Int64("duplicates", duplicates.Load()),
		)

		return writeTable(table)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchLots, "lots", "", "path to lot identifier list (required)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output file (default: stdout)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "csv", "output format: csv, xlsx, or json")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max lots to process concurrently (default from config)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max lots to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("lots")
	rootCmd.AddCommand(batchCmd)
}

// readLotIDs parses the lot list file: one identifier per line, blank
// lines and # comments skipped.
func readLotIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open lot list")
	}
	defer f.Close() //nolint:errcheck

	var lots []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lots = append(lots, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "batch: read lot list")
	}
	return lots, nil
}

// writeTable exports the accumulated table in the requested format.
func writeTable(table *site.Table) error {
	var w *os.File
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return eris.Wrap(err, "batch: create output file")
		}
		defer f.Close() //nolint:errcheck
		w = f
	} else {
		w = os.Stdout
	}

	records := table.Records()
	switch batchFormat {
	case "csv":
		return site.WriteCSV(w, records)
	case "xlsx":
		return site.WriteXLSX(w, records)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	default:
		return eris.Errorf("batch: unknown format %q", batchFormat)
	}
}
