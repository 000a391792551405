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
	// EndPtTransferTokens transfers tokens between two holders.
	EndPtTransferTokens EndPtName = "TransferTokens"
)

func init() {
	registrar[EndPtTransferTokens] = NewTransferTokens
}

// TransferTokens controls the transfer of tokens from the authenticated user
// to a receiving address. The sender's lock is checked before any write;
// receiver locks are never checked. Receiving addresses don't need to be
// registered users: a zero holding is synthesized on first receipt.
type TransferTokens struct {
	From    string
	To      string
	AssetID string
	Amount  model.Amount
}

// NewTransferTokens constructs and initialiezes the endpoint.
func NewTransferTokens(
	r *http.Request,
) (Endpoint, error) {
	return &TransferTokens{}, nil
}

// Validate validates the input parameters.
func (e *TransferTokens) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.From = authentication.Get(ctx).Address(ctx)

	// Validate asset.
	id, err := ValidateAssetID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate to.
	to, err := ValidateAddress(ctx, r.PostFormValue("to"))
	if err != nil {
		return errors.Trace(err)
	}
	e.To = *to

	// Validate amount.
	amount, err := ValidateAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Amount = model.Amount(*amount)

	return nil
}

// Execute executes the endpoint.
func (e *TransferTokens) Execute(
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
			"The asset you are trying to transfer tokens for is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	lock, err := model.LoadLockByAssetHolder(ctx, asset.ID, e.From)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if lock != nil && time.Now().Before(lock.UnlockAt) {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "tokens_locked",
			"The tokens you are trying to transfer are locked until: %s.",
			lock.UnlockAt.Format(time.RFC3339),
		))
	}

	sender, err := model.LoadHoldingByAssetHolder(ctx, asset.ID, e.From)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if sender == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "holder_not_found",
			"You have no holding for the asset: %s.",
			e.AssetID,
		))
	}

	if (*big.Int)(&sender.Balance).Cmp((*big.Int)(&e.Amount)) < 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "insufficient_balance",
			"Your holding balance is smaller than the amount to "+
				"transfer: %s < %s.",
			(*big.Int)(&sender.Balance).String(),
			(*big.Int)(&e.Amount).String(),
		))
	}

	// Self transfers debit and credit the same holding (a no-op that still
	// emits an audit entry and event).
	receiver := sender
	if e.To != e.From {
		receiver, err = model.LoadHoldingByAssetHolder(ctx, asset.ID, e.To)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		} else if receiver == nil {
			receiver, err = model.CreateHolding(ctx,
				asset.ID,
				e.To,
				model.Amount{},
				0,
			)
			if err != nil {
				return nil, nil, errors.Trace(err) // 500
			}
		}
	}

	(*big.Int)(&sender.Balance).Sub(
		(*big.Int)(&sender.Balance), (*big.Int)(&e.Amount))
	(*big.Int)(&receiver.Balance).Add(
		(*big.Int)(&receiver.Balance), (*big.Int)(&e.Amount))

	(*big.Int)(&sender.VotingPower).Set((*big.Int)(&sender.Balance))
	(*big.Int)(&sender.DividendEntitlement).Set((*big.Int)(&sender.Balance))
	sender.OwnershipBps = model.ComputeOwnershipBps(
		&sender.Balance, &asset.TotalSupply)

	err = sender.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if receiver != sender {
		(*big.Int)(&receiver.VotingPower).Set((*big.Int)(&receiver.Balance))
		(*big.Int)(&receiver.DividendEntitlement).Set(
			(*big.Int)(&receiver.Balance))
		receiver.OwnershipBps = model.ComputeOwnershipBps(
			&receiver.Balance, &asset.TotalSupply)

		err = receiver.Save(ctx)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	holders, err := model.LoadHoldersByAsset(ctx, asset.ID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}
	known := false
	for _, h := range holders {
		if h.Address == e.To {
			known = true
			break
		}
	}
	if !known {
		_, err = model.CreateHolder(ctx,
			asset.ID,
			e.To,
			int64(len(holders)),
		)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	err = audit.Append(ctx,
		asset.ID,
		audit.AcTokensTransferred,
		e.From,
		"Tokens transferred to recipient",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdTokensTransferred,
		format.JSONString(map[string]interface{}{
			"asset":  asset.ID,
			"from":   e.From,
			"to":     e.To,
			"amount": (*big.Int)(&e.Amount).String(),
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
		"holding": format.JSONPtr(ledger.NewHoldingResource(ctx, sender)),
	}, nil
}
