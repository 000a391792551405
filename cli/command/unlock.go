package command

import (
	"context"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmUnlock is the command name.
	CmdNmUnlock cli.CmdName = "unlock"
)

func init() {
	cli.Registrar[CmdNmUnlock] = NewUnlock
}

// Unlock removes the lock on a holder's tokens.
type Unlock struct {
	AssetID string
	Holder  string
}

// NewUnlock constructs and initializes the command.
func NewUnlock() cli.Command {
	return &Unlock{}
}

// Name returns the command name.
func (c *Unlock) Name() cli.CmdName {
	return CmdNmUnlock
}

// Help prints out the help message for the command.
func (c *Unlock) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger unlock <asset_id> <holder>\n")
	out.Normf("\n")
	out.Normf("  Unlocking removes the lock on a holder's tokens. Unlocking is\n")
	out.Normf("  idempotent: unlocking unlocked tokens is a no-op.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger unlock building-5th-ave von.neumann@ias.edu\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Unlock) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 2 {
		return errors.Trace(
			errors.Newf("Expected an asset id and a holder."))
	}
	c.AssetID = args[0]
	c.Holder = args[1]

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Unlock) Execute(
	ctx context.Context,
) error {
	lock, err := UnlockTokens(ctx, c.AssetID, c.Holder)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Lock:\n")
	out.Normf("  Asset  : ")
	out.Valuf("%s\n", lock.Asset)
	out.Normf("  Holder : ")
	out.Valuf("%s\n", lock.Holder)
	out.Normf("  Locked : ")
	out.Valuf("%t\n", lock.Locked)

	return nil
}
