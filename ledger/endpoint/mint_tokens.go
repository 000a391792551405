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
	// EndPtMintTokens mints additional tokens for an asset.
	EndPtMintTokens EndPtName = "MintTokens"
)

func init() {
	registrar[EndPtMintTokens] = NewMintTokens
}

// MintTokens controls the minting of additional tokens. Only the tokenizer
// of the asset can mint; the minted tokens are credited to its holding.
type MintTokens struct {
	Minter  string
	AssetID string
	Amount  model.Amount
}

// NewMintTokens constructs and initialiezes the endpoint.
func NewMintTokens(
	r *http.Request,
) (Endpoint, error) {
	return &MintTokens{}, nil
}

// Validate validates the input parameters.
func (e *MintTokens) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Minter = authentication.Get(ctx).Address(ctx)

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
func (e *MintTokens) Execute(
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
			"The asset you are trying to mint tokens for is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	if asset.Tokenizer != e.Minter {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the tokenizer of the asset can mint tokens: %s.",
			asset.Tokenizer,
		))
	}

	(*big.Int)(&asset.TotalSupply).Add(
		(*big.Int)(&asset.TotalSupply), (*big.Int)(&e.Amount))
	(*big.Int)(&asset.Circulation).Add(
		(*big.Int)(&asset.Circulation), (*big.Int)(&e.Amount))

	// Checks that the resulting supply is not overflown.
	if (*big.Int)(&asset.TotalSupply).Cmp(model.MaxTokenAmount) >= 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_token_supply",
			"The resulting total supply is invalid: %s. Total supplies "+
				"must be integers between 1 and 2^128.",
			(*big.Int)(&asset.TotalSupply).String(),
		))
	}

	holding, err := model.LoadHoldingByAssetHolder(ctx, asset.ID, e.Minter)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if holding == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "holder_not_found",
			"The tokenizer has no holding for the asset: %s.",
			e.AssetID,
		))
	}

	(*big.Int)(&holding.Balance).Add(
		(*big.Int)(&holding.Balance), (*big.Int)(&e.Amount))
	(*big.Int)(&holding.VotingPower).Set((*big.Int)(&holding.Balance))
	(*big.Int)(&holding.DividendEntitlement).Set((*big.Int)(&holding.Balance))
	holding.OwnershipBps = model.ComputeOwnershipBps(
		&holding.Balance, &asset.TotalSupply)

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
		audit.AcTokensMinted,
		e.Minter,
		"Tokens minted",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdTokensMinted,
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
