package command

import (
	"context"

	"github.com/Mkalbani/ManageAssets/cli"
	"github.com/Mkalbani/ManageAssets/lib/out"
)

const (
	// CmdNmHelp is the command name.
	CmdNmHelp cli.CmdName = "help"
)

func init() {
	cli.Registrar[CmdNmHelp] = NewHelp
}

// Help displays help about the ledger cli and its commands.
type Help struct {
	Command cli.Command
}

// NewHelp constructs and initializes the command.
func NewHelp() cli.Command {
	return &Help{}
}

// Name returns the command name.
func (c *Help) Name() cli.CmdName {
	return CmdNmHelp
}

// Help prints out the help message for the command.
func (c *Help) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("ledger <command> [<args> ...]\n")
	out.Normf("\n")
	out.Normf("  Tokenization and ownership ledger for real-world assets.\n")
	out.Normf("\n")
	out.Normf("Commands:\n")

	out.Boldf("  help <command>\n")
	out.Normf("    Show help for a command.\n")
	out.Valuf("    ledger help tokenize\n")
	out.Normf("\n")

	out.Boldf("  register\n")
	out.Normf("    Register a new user on a ledger.\n")
	out.Valuf("    ledger register\n")
	out.Normf("\n")

	out.Boldf("  login\n")
	out.Normf("    Log into a ledger.\n")
	out.Valuf("    ledger login\n")
	out.Normf("\n")

	out.Boldf("  logout\n")
	out.Normf("    Log the current user out.\n")
	out.Valuf("    ledger logout\n")
	out.Normf("\n")

	out.Boldf("  tokenize <asset_id> <symbol> <decimals> <supply>\n")
	out.Normf("    Tokenize a new asset with an initial supply.\n")
	out.Valuf("    ledger tokenize building-5th-ave BLDG 2 1000000\n")
	out.Normf("\n")

	out.Boldf("  mint <asset_id> <amount>\n")
	out.Normf("    Mint new tokens for an asset you tokenized.\n")
	out.Valuf("    ledger mint building-5th-ave 500000\n")
	out.Normf("\n")

	out.Boldf("  burn <asset_id> <amount>\n")
	out.Normf("    Burn tokens from your holding.\n")
	out.Valuf("    ledger burn building-5th-ave 200000\n")
	out.Normf("\n")

	out.Boldf("  transfer <asset_id> <amount> to <holder>\n")
	out.Normf("    Transfer tokens to another holder.\n")
	out.Valuf("    ledger transfer building-5th-ave 300000 to von.neumann@ias.edu\n")
	out.Normf("\n")

	out.Boldf("  lock <asset_id> <holder> until <date>\n")
	out.Normf("    Lock a holder's tokens until a date.\n")
	out.Valuf("    ledger lock building-5th-ave von.neumann@ias.edu until 2027-01-01T00:00:00Z\n")
	out.Normf("\n")

	out.Boldf("  unlock <asset_id> <holder>\n")
	out.Normf("    Remove the lock on a holder's tokens.\n")
	out.Valuf("    ledger unlock building-5th-ave von.neumann@ias.edu\n")
	out.Normf("\n")

	out.Boldf("  balance <asset_id> <holder>\n")
	out.Normf("    Retrieve the balance of a holder.\n")
	out.Valuf("    ledger balance building-5th-ave von.neumann@ias.edu\n")
	out.Normf("\n")

	out.Boldf("  holders <asset_id>\n")
	out.Normf("    List the holders of an asset.\n")
	out.Valuf("    ledger holders building-5th-ave\n")
	out.Normf("\n")

	out.Boldf("  asset <asset_id>\n")
	out.Normf("    Retrieve an asset and its supply details.\n")
	out.Valuf("    ledger asset building-5th-ave\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Help) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) == 0 {
		c.Command = NewHelp()
	} else {
		if r, ok := cli.Registrar[cli.CmdName(args[0])]; !ok {
			c.Command = NewHelp()
		} else {
			c.Command = r()
		}
	}
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Help) Execute(
	ctx context.Context,
) error {
	c.Command.Help(ctx)
	return nil
}
