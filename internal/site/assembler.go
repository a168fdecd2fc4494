// Package site assembles, accumulates, and exports site records.
package site

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/planning-cli/internal/model"
	"github.com/sells-group/planning-cli/internal/overlay"
	"github.com/sells-group/planning-cli/pkg/eplanning"
)

// Assembler resolves a lot identifier through the ePlanning dependency
// chain and merges the extractor outputs into one SiteRecord.
type Assembler struct {
	api eplanning.Client
}

// NewAssembler creates an Assembler backed by the given client.
func NewAssembler(api eplanning.Client) *Assembler {
	return &Assembler{api: api}
}

// Build resolves lot → cadastral id → property id, fetches address,
// council, and overlays, and assembles the site row. Any upstream
// failure aborts the whole row; no partial records are produced.
func (a *Assembler) Build(ctx context.Context, lotID string) (*model.SiteRecord, error) {
	lot, err := a.api.LotInfo(ctx, lotID)
	if err != nil {
		return nil, eris.Wrapf(err, "site: lot %q", lotID)
	}

	cadID, ok := lot.GetString("cadId")
	if !ok {
		return nil, eris.Wrapf(eplanning.ErrNotFound, "site: lot %q has no cadId", lotID)
	}

	propID, err := a.api.PropertyID(ctx, cadID)
	if err != nil {
		return nil, eris.Wrapf(err, "site: lot %q", lotID)
	}

	// Address, council, and overlays have no ordering dependency once
	// the ids are known.
	var (
		address string
		council string
		layers  []eplanning.Layer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		address, err = a.api.Address(gctx, propID)
		return err
	})
	g.Go(func() error {
		var err error
		council, err = a.api.Council(gctx, propID)
		return err
	})
	g.Go(func() error {
		var err error
		layers, err = a.api.Overlays(gctx, cadID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "site: lot %q", lotID)
	}

	idx, err := overlay.BuildIndex(layers)
	if err != nil {
		return nil, eris.Wrapf(err, "site: lot %q", lotID)
	}

	zap.L().Debug("site: overlays indexed",
		zap.String("lot_id", lotID),
		zap.String("cad_id", cadID),
		zap.Int("layers", len(idx)),
	)

	return &model.SiteRecord{
		Address: address,
		// Site area stays empty; boundary geometry is not interpreted.
		SiteArea:     "",
		LotID:        lotID,
		Council:      council,
		RegionalPlan: overlay.RegionalPlan(idx),
		LALC:         overlay.LALC(idx),
		Zoning:       overlay.LandZoning(idx),
		BPA:          overlay.Bushfire(idx),
		SpecialProvisions: overlay.MergeProvisions(
			overlay.SpecialProvisions(idx),
			overlay.Height(idx),
			overlay.AcidSulfateSoils(idx),
			overlay.Groundwater(idx),
			overlay.Biodiversity(idx),
		),
		CrownLand: overlay.CrownLand(idx),
		Heritage:  overlay.Heritage(idx),
	}, nil
}
