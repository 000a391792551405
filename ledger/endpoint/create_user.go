package endpoint

import (
	"context"
	"net/http"

	"github.com/Mkalbani/ManageAssets/ledger"
	"github.com/Mkalbani/ManageAssets/ledger/model"
	"github.com/Mkalbani/ManageAssets/lib/db"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/format"
	"github.com/Mkalbani/ManageAssets/lib/ptr"
	"github.com/Mkalbani/ManageAssets/lib/svc"
)

const (
	// EndPtCreateUser registers a new user.
	EndPtCreateUser EndPtName = "CreateUser"
)

func init() {
	registrar[EndPtCreateUser] = NewCreateUser
}

// CreateUser controls the registration of users. The username becomes the
// address under which the user holds tokens and acts on the ledger. It is
// not authenticated.
type CreateUser struct {
	Username string
	Password string
}

// NewCreateUser constructs and initialiezes the endpoint.
func NewCreateUser(
	r *http.Request,
) (Endpoint, error) {
	return &CreateUser{}, nil
}

// Validate validates the input parameters.
func (e *CreateUser) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	// Validate username.
	username, err := ValidateUsername(ctx, r.PostFormValue("username"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Username = *username

	// Validate password.
	password, err := ValidatePassword(ctx, r.PostFormValue("password"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Password = *password

	return nil
}

// Execute executes the endpoint.
func (e *CreateUser) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "ledger")
	defer db.LoggedRollback(ctx)

	user, err := model.CreateUser(ctx, e.Username, e.Password)
	if err != nil {
		switch err := errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "username_taken",
				"The username you provided is already associated with an "+
					"existing user: %s.",
				e.Username,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"user": format.JSONPtr(ledger.NewUserResource(ctx, user)),
	}, nil
}
