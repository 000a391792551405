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
	// EndPtRetrieveAsset retrieves a tokenized asset.
	EndPtRetrieveAsset EndPtName = "RetrieveAsset"
)

func init() {
	registrar[EndPtRetrieveAsset] = NewRetrieveAsset
}

// RetrieveAsset retrieves a tokenized asset based on its ID. It is not
// authenticated.
type RetrieveAsset struct {
	AssetID string
}

// NewRetrieveAsset constructs and initialiezes the endpoint.
func NewRetrieveAsset(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveAsset{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveAsset) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveAsset) Execute(
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
			"The asset you are trying to retrieve is not tokenized: %s.",
			e.AssetID,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"asset": format.JSONPtr(ledger.NewAssetResource(ctx, asset)),
	}, nil
}
