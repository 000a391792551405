package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtListWhitelistEntries lists the whitelist of an asset.
	EndPtListWhitelistEntries EndPtName = "ListWhitelistEntries"
)

func init() {
	registrar[EndPtListWhitelistEntries] = NewListWhitelistEntries
}

// ListWhitelistEntries lists the whitelisted addresses of an asset in
// creation order. It is not authenticated.
type ListWhitelistEntries struct {
	AssetID string
}

// NewListWhitelistEntries constructs and initialiezes the endpoint.
func NewListWhitelistEntries(
	r *http.Request,
) (Endpoint, error) {
	return &ListWhitelistEntries{}, nil
}

// Validate validates the input parameters.
func (e *ListWhitelistEntries) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")

	return nil
}

// Execute executes the endpoint.
func (e *ListWhitelistEntries) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	asset, err := model.LoadAssetByID(ctx, e.AssetID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if asset == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "asset_not_tokenized",
			"The asset you are trying to list the whitelist of is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	entries, err := model.LoadWhitelistEntriesByAsset(ctx, asset.ID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resources := []ledger.WhitelistEntryResource{}
	for _, entry := range entries {
		resources = append(resources,
			ledger.NewWhitelistEntryResource(ctx, entry))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"whitelist": format.JSONPtr(resources),
	}, nil
}
