package endpoint

import (
	"context"
	"math/big"
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
	// EndPtRetrieveOwnership retrieves the live ownership of a holder.
	EndPtRetrieveOwnership EndPtName = "RetrieveOwnership"
)

func init() {
	registrar[EndPtRetrieveOwnership] = NewRetrieveOwnership
}

// RetrieveOwnership retrieves the ownership of a holder over an asset in
// basis points, recomputed from the current balance and total supply. The
// cached basis points on holdings are advisory and possibly stale; this is
// the ground truth. It is not authenticated.
type RetrieveOwnership struct {
	AssetID string
	Holder  string
}

// NewRetrieveOwnership constructs and initialiezes the endpoint.
func NewRetrieveOwnership(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveOwnership{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveOwnership) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")
	e.Holder = pat.Param(r, "holder")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveOwnership) Execute(
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
			"The asset you are trying to retrieve the ownership for is "+
				"not tokenized: %s.",
			e.AssetID,
		))
	}

	holding, err := model.LoadHoldingByAssetHolder(ctx, e.AssetID, e.Holder)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if holding == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "holder_not_found",
			"The holder you are trying to retrieve the ownership of has "+
				"no holding for the asset: %s.",
			e.Holder,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"ownership": format.JSONPtr(ledger.NewOwnershipResource(ctx,
			asset.ID,
			e.Holder,
			new(big.Int).Set((*big.Int)(&holding.Balance)),
			model.ComputeOwnershipBps(&holding.Balance, &asset.TotalSupply),
		)),
	}, nil
}
