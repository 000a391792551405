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
	// EndPtRetrieveBalance retrieves the balance of a holder.
	EndPtRetrieveBalance EndPtName = "RetrieveBalance"
)

func init() {
	registrar[EndPtRetrieveBalance] = NewRetrieveBalance
}

// RetrieveBalance retrieves the balance of a holder for an asset. It is not
// authenticated and never errors: unknown holders and untokenized assets
// have a zero balance.
type RetrieveBalance struct {
	AssetID string
	Holder  string
}

// NewRetrieveBalance constructs and initialiezes the endpoint.
func NewRetrieveBalance(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveBalance{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveBalance) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")
	e.Holder = pat.Param(r, "holder")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveBalance) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	holding, err := model.LoadHoldingByAssetHolder(ctx, e.AssetID, e.Holder)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	balance := new(big.Int)
	if holding != nil {
		balance.Set((*big.Int)(&holding.Balance))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"balance": format.JSONPtr(ledger.NewBalanceResource(ctx,
			e.AssetID,
			e.Holder,
			balance,
		)),
	}, nil
}
