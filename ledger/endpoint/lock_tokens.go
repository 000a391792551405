package endpoint

import (
	"context"
	"net/http"
	"time"

	"goji.io/pat"

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
	// EndPtLockTokens locks a holder's tokens until a timestamp.
	EndPtLockTokens EndPtName = "LockTokens"
)

func init() {
	registrar[EndPtLockTokens] = NewLockTokens
}

// LockTokens controls the locking of a holder's tokens. Only the tokenizer
// of the asset can lock. An existing lock is overwritten unconditionally and
// past timestamps are accepted (the lock is simply inert).
type LockTokens struct {
	Caller  string
	AssetID string
	Holder  string
	Until   time.Time
}

// NewLockTokens constructs and initialiezes the endpoint.
func NewLockTokens(
	r *http.Request,
) (Endpoint, error) {
	return &LockTokens{}, nil
}

// Validate validates the input parameters.
func (e *LockTokens) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Address(ctx)

	// Validate asset.
	id, err := ValidateAssetID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate holder.
	holder, err := ValidateAddress(ctx, r.PostFormValue("holder"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Holder = *holder

	// Validate until.
	until, err := ValidateDate(ctx, r.PostFormValue("until"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Until = *until

	return nil
}

// Execute executes the endpoint.
func (e *LockTokens) Execute(
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
			"The asset you are trying to lock tokens for is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	if asset.Tokenizer != e.Caller {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			403, "unauthorized",
			"Only the tokenizer of the asset can lock tokens: %s.",
			asset.Tokenizer,
		))
	}

	lock, err := model.LoadLockByAssetHolder(ctx, asset.ID, e.Holder)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}
	if lock != nil {
		lock.UnlockAt = e.Until.UTC()
		err = lock.Save(ctx)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	} else {
		lock, err = model.CreateLock(ctx, asset.ID, e.Holder, e.Until)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdTokensLocked,
		format.JSONString(map[string]interface{}{
			"asset":     asset.ID,
			"holder":    e.Holder,
			"unlock_at": lock.UnlockAt.UnixNano() / (1000 * 1000),
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
		"lock": format.JSONPtr(ledger.NewLockResource(ctx,
			asset.ID,
			e.Holder,
			time.Now().Before(lock.UnlockAt),
			ptr.Int64(lock.UnlockAt.UnixNano()/(1000*1000)),
		)),
	}, nil
}
