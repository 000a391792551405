package endpoint

import (
	"context"
	"net/http"
	"time"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/audit"
	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/lib/authentication"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
	"github.com/shopspring/decimal"
)

const (
	// EndPtCreatePolicy creates an insurance policy for an asset.
	EndPtCreatePolicy EndPtName = "CreatePolicy"
)

func init() {
	registrar[EndPtCreatePolicy] = NewCreatePolicy
}

// CreatePolicy controls the underwriting of insurance policies. The
// authenticated user becomes the insurer of the policy; the premium is
// considered paid at creation.
type CreatePolicy struct {
	Insurer    string
	AssetID    string
	Holder     string
	Type       model.PlType
	Coverage   decimal.Decimal
	Deductible decimal.Decimal
	Premium    decimal.Decimal
	Start      time.Time
	End        time.Time
	AutoRenew  bool
}

// NewCreatePolicy constructs and initialiezes the endpoint.
func NewCreatePolicy(
	r *http.Request,
) (Endpoint, error) {
	return &CreatePolicy{}, nil
}

// Validate validates the input parameters.
func (e *CreatePolicy) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Insurer = authentication.Get(ctx).Address(ctx)

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

	// Validate type.
	plType, err := ValidatePolicyType(ctx, r.PostFormValue("type"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Type = *plType

	// Validate coverage.
	coverage, err := ValidateCoverage(ctx, r.PostFormValue("coverage"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Coverage = *coverage

	// Validate deductible.
	deductible, err := ValidateDeductible(ctx, r.PostFormValue("deductible"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Deductible = *deductible

	// Validate premium.
	premium, err := ValidatePremium(ctx, r.PostFormValue("premium"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Premium = *premium

	// Validate start.
	start, err := ValidateDate(ctx, r.PostFormValue("start"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Start = *start

	// Validate end.
	end, err := ValidateDate(ctx, r.PostFormValue("end"))
	if err != nil {
		return errors.Trace(err)
	}
	e.End = *end

	// Validate auto_renew.
	autoRenew, err := ValidateAutoRenew(ctx, r.PostFormValue("auto_renew"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AutoRenew = *autoRenew

	if e.Deductible.Cmp(e.Coverage) >= 0 {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "deductible_invalid",
			"The deductible you provided is not smaller than the coverage: "+
				"%s >= %s.",
			e.Deductible.String(), e.Coverage.String(),
		))
	}
	if !e.Start.Before(e.End) {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "period_invalid",
			"The policy period you provided is empty: start %s does not "+
				"precede end %s.",
			e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339),
		))
	}
	if e.Start.Before(time.Now()) {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "period_invalid",
			"The policy period you provided starts in the past: %s.",
			e.Start.Format(time.RFC3339),
		))
	}

	return nil
}

// Execute executes the endpoint.
func (e *CreatePolicy) Execute(
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
			"The asset you are trying to insure is not tokenized: %s.",
			e.AssetID,
		))
	}

	policy, err := model.CreatePolicy(ctx,
		asset.ID,
		e.Holder,
		e.Insurer,
		e.Type,
		e.Coverage,
		e.Deductible,
		e.Premium,
		e.Start,
		e.End,
		e.AutoRenew,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	err = audit.Append(ctx,
		asset.ID,
		audit.AcPolicyCreated,
		e.Insurer,
		"Insurance policy created",
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"policy": format.JSONPtr(ledger.NewPolicyResource(ctx, policy)),
	}, nil
}
