package ledger

import (
	"context"

	"github.com/Mkalbani/ManageAssets/lib/logging"
)

const (
	// Version is the current version.
	Version string = "0.0.1"

	// ProtocolVersion is the version of the ledger HTTP protocol, sent along
	// with every client request.
	ProtocolVersion string = "0"
)

// Logf shells out to logging.Logf.
func Logf(
	ctx context.Context,
	format string,
	v ...interface{},
) {
	logging.Logf(ctx, format, v...)
}
