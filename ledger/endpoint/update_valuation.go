package endpoint

import (
	"context"
	"math/big"
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
	// EndPtUpdateValuation updates the valuation of an asset.
	EndPtUpdateValuation EndPtName = "UpdateValuation"
)

func init() {
	registrar[EndPtUpdateValuation] = NewUpdateValuation
}

// UpdateValuation controls the update of an asset valuation. Any
// authenticated user can update a valuation.
type UpdateValuation struct {
	AssetID   string
	Valuation model.Amount
}

// NewUpdateValuation constructs and initialiezes the endpoint.
func NewUpdateValuation(
	r *http.Request,
) (Endpoint, error) {
	return &UpdateValuation{}, nil
}

// Validate validates the input parameters.
func (e *UpdateValuation) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	// Validate asset.
	id, err := ValidateAssetID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate valuation.
	valuation, err := ValidateValuation(ctx, r.PostFormValue("valuation"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Valuation = model.Amount(*valuation)

	return nil
}

// Execute executes the endpoint.
func (e *UpdateValuation) Execute(
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
			"The asset you are trying to update the valuation of is not "+
				"tokenized: %s.",
			e.AssetID,
		))
	}

	(*big.Int)(&asset.Valuation).Set((*big.Int)(&e.Valuation))

	err = asset.Save(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdValuationUpdated,
		format.JSONString(map[string]interface{}{
			"asset":     asset.ID,
			"valuation": (*big.Int)(&asset.Valuation).String(),
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
