// OWNER: mkalbani

package command

import (
	"context"
	"math/big"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmTransfer is the command name.
	CmdNmTransfer cli.CmdName = "transfer"
)

func init() {
	cli.Registrar[CmdNmTransfer] = NewTransfer
}

// Transfer moves tokens from the current user to another holder.
type Transfer struct {
	AssetID string
	Amount  big.Int
	To      string
}

// NewTransfer constructs and initializes the command.
func NewTransfer() cli.Command {
	return &Transfer{}
}

// Name returns the command name.
func (c *Transfer) Name() cli.CmdName {
	return CmdNmTransfer
}

// Help prints out the help message for the command.
func (c *Transfer) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger transfer <asset_id> <amount> to <holder>\n")
	out.Normf("\n")
	out.Normf("  Transferring moves tokens from your holding to another holder's,\n")
	out.Normf("  updating ownership stakes for both.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger transfer building-5th-ave 300000 to von.neumann@ias.edu\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Transfer) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 4 || args[2] != "to" {
		return errors.Trace(
			errors.Newf("Expected: <asset_id> <amount> to <holder>"))
	}
	c.AssetID = args[0]

	var amount big.Int
	if _, ok := amount.SetString(args[1], 10); !ok {
		return errors.Trace(
			errors.Newf("Invalid amount: %s", args[1]))
	}
	c.Amount = amount
	c.To = args[3]

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Transfer) Execute(
	ctx context.Context,
) error {
	holding, err := TransferTokens(ctx, c.AssetID, c.To, c.Amount)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Holding:\n")
	out.Normf("  Asset         : ")
	out.Valuf("%s\n", holding.Asset)
	out.Normf("  Holder        : ")
	out.Valuf("%s\n", holding.Holder)
	out.Normf("  Balance       : ")
	out.Valuf("%s\n", holding.Balance.String())
	out.Normf("  Ownership bps : ")
	out.Valuf("%d\n", holding.OwnershipBps)

	return nil
}
