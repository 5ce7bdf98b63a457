// Package ui provides styled terminal output for the non-interactive CLI
// commands: result boxes for submissions, aligned tables for entity lists,
// and the yes/no confirmation prompt shown before a payload ships.
//
// The interactive dashboard has its own rendering in the tui package; this
// package covers the one-shot command output that scripts and CI logs see.
//
// # Result Boxes
//
//	fmt.Println(ui.NewSuccessResult("Product created").
//	    AddDetail("Title", "Chair").
//	    AddDetail("Price", "49.99").
//	    Render())
//
// Failure boxes carry the error and optional guidance lines:
//
//	fmt.Println(ui.RenderFailure("Submission failed", err, []string{
//	    "Check that the API server is running",
//	}))
package ui
