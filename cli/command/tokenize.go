// OWNER: mkalbani

package command

import (
	"context"
	"math/big"
	"strconv"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/errors"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmTokenize is the command name.
	CmdNmTokenize cli.CmdName = "tokenize"
)

func init() {
	cli.Registrar[CmdNmTokenize] = NewTokenize
}

// Tokenize creates a new asset with an initial supply credited to the
// current user.
type Tokenize struct {
	AssetID  string
	Symbol   string
	Decimals int8
	Supply   big.Int
}

// NewTokenize constructs and initializes the command.
func NewTokenize() cli.Command {
	return &Tokenize{}
}

// Name returns the command name.
func (c *Tokenize) Name() cli.CmdName {
	return CmdNmTokenize
}

// Help prints out the help message for the command.
func (c *Tokenize) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger tokenize <asset_id> <symbol> <decimals> <supply>\n")
	out.Normf("\n")
	out.Normf("  Tokenizing an asset creates it on your ledger with the provided initial\n")
	out.Normf("  supply, credited to you (the tokenizer).\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  asset_id\n")
	out.Normf("    A unique identifier for the asset.\n")
	out.Valuf("    building-5th-ave\n")
	out.Normf("\n")
	out.Boldf("  symbol\n")
	out.Normf("    The ticker symbol of the token.\n")
	out.Valuf("    BLDG\n")
	out.Normf("\n")
	out.Boldf("  decimals\n")
	out.Normf("    The number of decimals of the token.\n")
	out.Valuf("    2\n")
	out.Normf("\n")
	out.Boldf("  supply\n")
	out.Normf("    The initial token supply.\n")
	out.Valuf("    1000000\n")
	out.Normf("\n")
	out.Normf("Examples:\n")
	out.Valuf("  ledger tokenize building-5th-ave BLDG 2 1000000\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Tokenize) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 4 {
		return errors.Trace(
			errors.Newf("Expected an asset id, a symbol, decimals and a supply."))
	}
	c.AssetID = args[0]
	c.Symbol = args[1]

	decimals, err := strconv.ParseInt(args[2], 10, 8)
	if err != nil || decimals < 0 || decimals > 24 {
		return errors.Trace(
			errors.Newf("Invalid decimals: %s", args[2]))
	}
	c.Decimals = int8(decimals)

	var supply big.Int
	if _, ok := supply.SetString(args[3], 10); !ok {
		return errors.Trace(
			errors.Newf("Invalid supply: %s", args[3]))
	}
	c.Supply = supply

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Tokenize) Execute(
	ctx context.Context,
) error {
	asset, err := TokenizeAsset(ctx, c.AssetID, c.Symbol, c.Decimals, c.Supply)
	if err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Asset:\n")
	out.Normf("  ID           : ")
	out.Valuf("%s\n", asset.ID)
	out.Normf("  Symbol       : ")
	out.Valuf("%s\n", asset.Symbol)
	out.Normf("  Tokenizer    : ")
	out.Valuf("%s\n", asset.Tokenizer)
	out.Normf("  Total supply : ")
	out.Valuf("%s\n", asset.TotalSupply.String())

	return nil
}
