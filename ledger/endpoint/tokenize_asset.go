package endpoint

import (
	"context"
	"math/big"
	"net/http"
	"time"

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
	// EndPtTokenizeAsset tokenizes a new asset.
	EndPtTokenizeAsset EndPtName = "TokenizeAsset"
)

func init() {
	registrar[EndPtTokenizeAsset] = NewTokenizeAsset
}

// TokenizeAsset controls the tokenization of new assets. The authenticated
// user becomes the tokenizer and first holder of the full supply.
type TokenizeAsset struct {
	Tokenizer          string
	AssetID            string
	Symbol             string
	Decimals           int8
	Supply             model.Amount
	MinVotingThreshold model.Amount
	Name               string
	Description        string
	Type               model.MdType
}

// NewTokenizeAsset constructs and initialiezes the endpoint.
func NewTokenizeAsset(
	r *http.Request,
) (Endpoint, error) {
	return &TokenizeAsset{}, nil
}

// Validate validates the input parameters.
func (e *TokenizeAsset) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Tokenizer = authentication.Get(ctx).Address(ctx)

	// Validate asset_id.
	id, err := ValidateAssetID(ctx, r.PostFormValue("asset_id"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetID = *id

	// Validate symbol.
	symbol, err := ValidateSymbol(ctx, r.PostFormValue("symbol"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Symbol = *symbol

	// Validate decimals.
	decimals, err := ValidateDecimals(ctx, r.PostFormValue("decimals"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Decimals = *decimals

	// Validate supply.
	supply, err := ValidateAmount(ctx, r.PostFormValue("supply"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Supply = model.Amount(*supply)

	// Validate min_voting_threshold.
	threshold, err := ValidateMinVotingThreshold(ctx,
		r.PostFormValue("min_voting_threshold"))
	if err != nil {
		return errors.Trace(err)
	}
	e.MinVotingThreshold = model.Amount(*threshold)

	// Validate asset_type.
	mdType, err := ValidateAssetType(ctx, r.PostFormValue("asset_type"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Type = *mdType

	e.Name = r.PostFormValue("name")
	e.Description = r.PostFormValue("description")

	return nil
}

// Execute executes the endpoint.
func (e *TokenizeAsset) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	asset, err := model.CreateAsset(ctx,
		e.AssetID,
		e.Symbol,
		e.Decimals,
		e.Tokenizer,
		e.Supply,
		e.MinVotingThreshold,
	)
	if err != nil {
		switch err := errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "asset_already_tokenized",
				"The asset you are trying to tokenize is already "+
					"tokenized: %s.",
				e.AssetID,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	_, err = model.CreateMetadata(ctx,
		asset.ID,
		e.Name,
		e.Description,
		e.Type,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	// The tokenizer starts as sole holder of the full supply (100% in basis
	// points).
	_, err = model.CreateHolding(ctx,
		asset.ID,
		e.Tokenizer,
		asset.TotalSupply,
		10000,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	_, err = model.CreateHolder(ctx,
		asset.ID,
		e.Tokenizer,
		0,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = audit.Append(ctx,
		asset.ID,
		audit.AcAssetTokenized,
		e.Tokenizer,
		"Asset tokenized with tokens",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateEvent(ctx,
		asset.ID,
		model.EvKdAssetTokenized,
		format.JSONString(map[string]interface{}{
			"asset":     asset.ID,
			"supply":    (*big.Int)(&asset.TotalSupply).String(),
			"symbol":    asset.Symbol,
			"decimals":  asset.Decimals,
			"tokenizer": asset.Tokenizer,
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

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"asset": format.JSONPtr(ledger.NewAssetResource(ctx, asset)),
	}, nil
}
