package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/Mkalbani/ManageAssets/audit"
	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtListAudits lists the audit trail of an asset.
	EndPtListAudits EndPtName = "ListAudits"
)

func init() {
	registrar[EndPtListAudits] = NewListAudits
}

// ListAudits lists the audit trail of an asset in append order. Assets with
// no audited operation have an empty trail. It is not authenticated.
type ListAudits struct {
	AssetID string
}

// NewListAudits constructs and initialiezes the endpoint.
func NewListAudits(
	r *http.Request,
) (Endpoint, error) {
	return &ListAudits{}, nil
}

// Validate validates the input parameters.
func (e *ListAudits) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")

	return nil
}

// Execute executes the endpoint.
func (e *ListAudits) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	entries, err := audit.LoadEntriesByAsset(ctx, e.AssetID)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resources := []ledger.AuditEntryResource{}
	for _, entry := range entries {
		resources = append(resources, ledger.NewAuditEntryResource(ctx, entry))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"audits": format.JSONPtr(resources),
	}, nil
}
