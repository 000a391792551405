package command

import (
	"context"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmHolders is the command name.
	CmdNmHolders cli.CmdName = "holders"
)

func init() {
	cli.Registrar[CmdNmHolders] = NewHolders
}

// Holders lists the holders of an asset in registration order.
type Holders struct {
	AssetID string
}

// NewHolders constructs and initializes the command.
func NewHolders() cli.Command {
	return &Holders{}
}

// Name returns the command name.
func (c *Holders) Name() cli.CmdName {
	return CmdNmHolders
}

// Help prints out the help message for the command.
func (c *Holders) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger holders <asset_id>\n")
	out.Normf("\n")
	out.Normf("  Lists the holder addresses of an asset in order of first registration.\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger holders building-5th-ave\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Holders) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 1 {
		return errors.Trace(
			errors.Newf("Expected an asset id."))
	}
	c.AssetID = args[0]

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Holders) Execute(
	ctx context.Context,
) error {
	holders, err := ListHolders(ctx, c.AssetID)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Holders:\n")
	for i, h := range holders {
		out.Normf("  (%d) ", i)
		out.Valuf("%s\n", h)
	}

	return nil
}
