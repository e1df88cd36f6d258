// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clip copies download links to the system clipboard when one is
// available. Headless machines have no clipboard; callers degrade to
// printing the link instead.
package clip

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Available reports whether a system clipboard can be written.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard available on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
