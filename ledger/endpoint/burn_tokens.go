package endpoint

import (
	"context"
	"math/big"
	"net/http"
	"time"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/audit"
	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/async"
	"github.com/Mkalbani/ManageAssets/ledger/async/task"
	"github.com/Mkalbani/ManageAssets/ledger/lib/authentication"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtBurnTokens burns tokens from the tokenizer's holding.
	EndPtBurnTokens EndPtName = "BurnTokens"
)

func init() {
	registrar[EndPtBurnTokens] = NewBurnTokens
}

// BurnTokens controls the burning of tokens. Only the tokenizer of the asset
// can burn, and only from its own holding. The cached basis points of the
// holding are recomputed against the supply before decrement; the live
// ownership computation reflects the new supply.
type BurnTokens struct {
	Burner  string
	AssetID string
	Amount  model.Amount
}

// NewBurnTokens constructs and initialiezes the endpoint.
func NewBurnTokens(
	r *http.Request,
) (Endpoint, error) {
	return &BurnTokens{}, nil
}

// Validate validates the input parameters.
func (e *BurnTokens) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Burner = authentication.Get(ctx).Address(ctx)

	// Validate asset.
	id, err := ValidateAssetID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate amount.
	amount, err := ValidateAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Amount = model.Amount(*amount)

	return nil
}

// Execute executes the endpoint.
func (e *BurnTokens) Execute(
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
			"The asset you are trying to burn tokens for is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	if asset.Tokenizer != e.Burner {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the tokenizer of the asset can burn tokens: %s.",
			asset.Tokenizer,
		))
	}

	holding, err := model.LoadHoldingByAssetHolder(ctx, asset.ID, e.Burner)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if holding == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "holder_not_found",
			"The tokenizer has no holding for the asset: %s.",
			e.AssetID,
		))
	}

	if (*big.Int)(&holding.Balance).Cmp((*big.Int)(&e.Amount)) < 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "insufficient_balance",
			"The tokenizer holding balance is smaller than the amount to "+
				"burn: %s < %s.",
			(*big.Int)(&holding.Balance).String(),
			(*big.Int)(&e.Amount).String(),
		))
	}

	(*big.Int)(&holding.Balance).Sub(
		(*big.Int)(&holding.Balance), (*big.Int)(&e.Amount))
	(*big.Int)(&holding.VotingPower).Set((*big.Int)(&holding.Balance))
	(*big.Int)(&holding.DividendEntitlement).Set((*big.Int)(&holding.Balance))

	// Basis points are computed against the supply before decrement.
	holding.OwnershipBps = model.ComputeOwnershipBps(
		&holding.Balance, &asset.TotalSupply)

	(*big.Int)(&asset.TotalSupply).Sub(
		(*big.Int)(&asset.TotalSupply), (*big.Int)(&e.Amount))
	(*big.Int)(&asset.Circulation).Sub(
		(*big.Int)(&asset.Circulation), (*big.Int)(&e.Amount))

	err = holding.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = asset.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = audit.Append(ctx,
		asset.ID,
		audit.AcTokensBurned,
		e.Burner,
		"Tokens burned",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdTokensBurned,
		format.JSONString(map[string]interface{}{
			"asset":        asset.ID,
			"amount":       (*big.Int)(&e.Amount).String(),
			"total_supply": (*big.Int)(&asset.TotalSupply).String(),
		}),
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	// Queued after commit so observers can only ever be notified of
	// committed events.
	err = async.Queue(ctx,
		task.NewPropagateEvent(ctx, time.Now(), event.Token))
	if err != nil {
		ledger.Logf(ctx,
			"Failed to queue event propagation: event=%s error=%q",
			event.Token, err.Error())
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"asset": format.JSONPtr(ledger.NewAssetResource(ctx, asset)),
	}, nil
}
