package command

import (
	"context"
	"time"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmLock is the command name.
	CmdNmLock cli.CmdName = "lock"
)

func init() {
	cli.Registrar[CmdNmLock] = NewLock
}

// Lock freezes a holder's tokens until a date.
type Lock struct {
	AssetID string
	Holder  string
	Until   string
}

// NewLock constructs and initializes the command.
func NewLock() cli.Command {
	return &Lock{}
}

// Name returns the command name.
func (c *Lock) Name() cli.CmdName {
	return CmdNmLock
}

// Help prints out the help message for the command.
func (c *Lock) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger lock <asset_id> <holder> until <date>\n")
	out.Normf("\n")
	out.Normf("  Locking freezes a holder's tokens until the provided date. Only the\n")
	out.Normf("  tokenizer of the asset can lock tokens.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger lock building-5th-ave von.neumann@ias.edu until 2027-01-01T00:00:00Z\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Lock) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 4 || args[2] != "until" {
		return errors.Trace(
			errors.Newf("Expected: <asset_id> <holder> until <date>"))
	}
	c.AssetID = args[0]
	c.Holder = args[1]

	if _, err := time.Parse(time.RFC3339, args[3]); err != nil {
		return errors.Trace(
			errors.Newf("Invalid date: %s (expected RFC3339)", args[3]))
	}
	c.Until = args[3]

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Lock) Execute(
	ctx context.Context,
) error {
	lock, err := LockTokens(ctx, c.AssetID, c.Holder, c.Until)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Lock:\n")
	out.Normf("  Asset  : ")
	out.Valuf("%s\n", lock.Asset)
	out.Normf("  Holder : ")
	out.Valuf("%s\n", lock.Holder)
	if lock.UnlockAt != nil {
		out.Normf("  Until  : ")
		out.Valuf("%s\n",
			time.Unix(0, *lock.UnlockAt*int64(time.Millisecond)).UTC().
				Format(time.RFC3339))
	}

	return nil
}
