// Package cli implements the client's user-facing commands on top of the
// sync service. Rendering is deliberately plain text: the desktop shell
// owns the real UI, and these commands exist for scripting and debugging
// the sync core.
package cli

import (
	"fmt"
	"os"

	"github.com/angmini/angmini-client/internal/client/sync"
)

type Cli struct {
	syncService *sync.Service
}

func New(syncService *sync.Service) *Cli {
	return &Cli{syncService: syncService}
}

// PrintUsage prints the command summary.
func PrintUsage() {
	fmt.Fprintln(os.Stderr, "Usage: angmini-client [flags] <command>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run              Poll the channel until interrupted")
	fmt.Fprintln(os.Stderr, "  status           Show cache counts and last sync time")
	fmt.Fprintln(os.Stderr, "  list [date|from to]")
	fmt.Fprintln(os.Stderr, "                   List cached schedules, optionally filtered")
	fmt.Fprintln(os.Stderr, "  send <text...>   Send one message to the assistant")
	fmt.Fprintln(os.Stderr, "  reset            Wipe the local cache")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config <path>   .env file to load (default ./.env)")
	fmt.Fprintln(os.Stderr, "  -db <path>       Override the cache file path")
	fmt.Fprintln(os.Stderr, "  -version         Show version information")
}
