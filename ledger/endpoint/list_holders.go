package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtListHolders lists the holders of an asset.
	EndPtListHolders EndPtName = "ListHolders"
)

func init() {
	registrar[EndPtListHolders] = NewListHolders
}

// ListHolders lists the holder addresses of an asset in the order they were
// registered. An asset always has at least its tokenizer as holder, so an
// empty registry means the asset was never tokenized. It is not
// authenticated.
type ListHolders struct {
	AssetID string
}

// NewListHolders constructs and initialiezes the endpoint.
func NewListHolders(
	r *http.Request,
) (Endpoint, error) {
	return &ListHolders{}, nil
}

// Validate validates the input parameters.
func (e *ListHolders) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")

	return nil
}

// Execute executes the endpoint.
func (e *ListHolders) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	holders, err := model.LoadHoldersByAsset(ctx, e.AssetID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if len(holders) == 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "asset_not_tokenized",
			"The asset you are trying to list the holders of is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	db.Commit(ctx)

	addresses := []string{}
	for _, h := range holders {
		addresses = append(addresses, h.Address)
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"holders": format.JSONPtr(addresses),
	}, nil
}
