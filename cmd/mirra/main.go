package main

import (
	"errors"
	"fmt"
	"os"

	mirra "github.com/mirra-ai/mirra-go"
	"github.com/mirra-ai/mirra-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		// API-level failures exit 2 so scripts can tell them apart
		// from usage or local errors.
		var apiErr *mirra.Error
		if errors.As(err, &apiErr) && apiErr.Kind == mirra.KindAPI {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
