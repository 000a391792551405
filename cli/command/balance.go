package command

import (
	"context"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmBalance is the command name.
	CmdNmBalance cli.CmdName = "balance"
)

func init() {
	cli.Registrar[CmdNmBalance] = NewBalance
}

// Balance retrieves the balance of a holder for an asset.
type Balance struct {
	AssetID string
	Holder  string
}

// NewBalance constructs and initializes the command.
func NewBalance() cli.Command {
	return &Balance{}
}

// Name returns the command name.
func (c *Balance) Name() cli.CmdName {
	return CmdNmBalance
}

// Help prints out the help message for the command.
func (c *Balance) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger balance <asset_id> <holder>\n")
	out.Normf("\n")
	out.Normf("  Retrieves the balance of a holder for an asset. Unknown holders have a\n")
	out.Normf("  balance of 0.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger balance building-5th-ave von.neumann@ias.edu\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Balance) Parse(
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
func (c *Balance) Execute(
	ctx context.Context,
) error {
	balance, err := RetrieveBalance(ctx, c.AssetID, c.Holder)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Balance:\n")
	out.Normf("  Asset   : ")
	out.Valuf("%s\n", balance.Asset)
	out.Normf("  Holder  : ")
	out.Valuf("%s\n", balance.Holder)
	out.Normf("  Balance : ")
	out.Valuf("%s\n", balance.Balance.String())

	return nil
}
