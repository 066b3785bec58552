/*
Package qa is the high-level entry point for managing Windows Quick Access.

# Quick Start

Open a manager over the native adapter and pin a folder:

	mgr, err := qa.Open(ctx)
	if err != nil {
	    log.Fatal(err)
	}
	err = mgr.AddItem(ctx, `C:\work\project`, quickaccess.FrequentFolders, false)

# Features

  - Query recent files and frequent folders
  - Pin, unpin, and remove items
  - Clear lists while preserving OS-pinned defaults
  - Toggle list visibility in Explorer
  - Feasibility probing with a one-call policy fix
  - Every native call bounded by a per-kind timeout

# Options

Open uses defaults throughout. OpenWithOptions accepts quickaccess.Options
for custom timeouts, worker pool size, logging, or a replacement adapter:

	mgr, err := qa.OpenWithOptions(ctx, quickaccess.Options{
	    Timeouts: quickaccess.Timeouts{Query: 2 * time.Second},
	    Logger:   slog.Default(),
	})

Non-Windows platforms compile but every operation reports
quickaccess.ErrUnsupported.
*/
package qa
