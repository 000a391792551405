package ledger

import (
	"context"
	"strings"

	"github.com/Mkalbani/ManageAssets/lib/env"
)

const (
	// EnvCfgHost is the env config key for the ledger host.
	EnvCfgHost env.ConfigKey = "host"
	// EnvCfgPort is the env config key for the port the ledger is running on.
	EnvCfgPort env.ConfigKey = "port"
	// EnvCfgObservers is the env config key for the comma-separated list of
	// observer URLs events get propagated to.
	EnvCfgObservers env.ConfigKey = "observers"
)

// DefaultPort is the default port by environment.
var DefaultPort = map[env.Environment]int64{
	env.QA:         2612,
	env.Production: 2612,
}

// GetHost retrieves the current ledger host from the given context.
func GetHost(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgHost]
}

// GetPort retrieves the port the ledger is running on from the given
// context.
func GetPort(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgPort]
}

// GetObservers retrieves the observer URLs from the given context.
func GetObservers(
	ctx context.Context,
) []string {
	observers := []string{}
	for _, url := range strings.Split(
		env.Get(ctx).Config[EnvCfgObservers], ",") {
		url = strings.TrimSpace(url)
		if url != "" {
			observers = append(observers, url)
		}
	}
	return observers
}
