package endpoint

import (
	"context"
	"net/http"
	"time"

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
	// EndPtRetrieveLock retrieves the lock state of a holder.
	EndPtRetrieveLock EndPtName = "RetrieveLock"
)

func init() {
	registrar[EndPtRetrieveLock] = NewRetrieveLock
}

// RetrieveLock retrieves the lock state of a holder for an asset. It is not
// authenticated and never errors: a holder is locked iff a lock exists with
// an unlock timestamp strictly in the future.
type RetrieveLock struct {
	AssetID string
	Holder  string
}

// NewRetrieveLock constructs and initialiezes the endpoint.
func NewRetrieveLock(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveLock{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveLock) Validate(
	r *http.Request,
) error {
	e.AssetID = pat.Param(r, "asset")
	e.Holder = pat.Param(r, "holder")

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveLock) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	lock, err := model.LoadLockByAssetHolder(ctx, e.AssetID, e.Holder)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	locked := false
	var unlockAt *int64
	if lock != nil {
		locked = time.Now().Before(lock.UnlockAt)
		unlockAt = ptr.Int64(lock.UnlockAt.UnixNano() / (1000 * 1000))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"lock": format.JSONPtr(ledger.NewLockResource(ctx,
			e.AssetID,
			e.Holder,
			locked,
			unlockAt,
		)),
	}, nil
}
