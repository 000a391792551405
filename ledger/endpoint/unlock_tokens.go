package endpoint

import (
	"context"
	"net/http"
	"time"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/async"
	"github.com/Mkalbani/ManageAssets/ledger/async/task"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtUnlockTokens releases the lock on a holder's tokens.
	EndPtUnlockTokens EndPtName = "UnlockTokens"
)

func init() {
	registrar[EndPtUnlockTokens] = NewUnlockTokens
}

// UnlockTokens controls the release of a holder's lock. The operation
// carries no capability check and is idempotent: releasing a holder with no
// lock is a no-op.
type UnlockTokens struct {
	AssetID string
	Holder  string
}

// NewUnlockTokens constructs and initialiezes the endpoint.
func NewUnlockTokens(
	r *http.Request,
) (Endpoint, error) {
	return &UnlockTokens{}, nil
}

// Validate validates the input parameters.
func (e *UnlockTokens) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	// Validate asset.
	id, err := ValidateAssetID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate holder.
	holder, err := ValidateAddress(ctx, pat.Param(r, "holder"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Holder = *holder

	return nil
}

// Execute executes the endpoint.
func (e *UnlockTokens) Execute(
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
			"The asset you are trying to unlock tokens for is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	lock, err := model.LoadLockByAssetHolder(ctx, asset.ID, e.Holder)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}
	if lock != nil {
		err = lock.Delete(ctx)
		if err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdTokensUnlocked,
		format.JSONString(map[string]interface{}{
			"asset":  asset.ID,
			"holder": e.Holder,
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
			false,
			nil,
		)),
	}, nil
}
