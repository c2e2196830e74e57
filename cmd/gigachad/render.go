// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gigachad-dev/gigachad/internal/app/execute"
	"github.com/gigachad-dev/gigachad/internal/issue"

	"github.com/charmbracelet/fang"
	"golang.org/x/term"
)

// renderHeader styles the session header printed before each run.
func renderHeader(title, name string) string {
	return headerStyle.Render(execute.Header(title, name))
}

// renderError is fang's error handler. Actionable errors print their
// suggestions; the linked catalog guide is added under --verbose.
func (a *App) renderError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	ae, ok := issue.AsActionable(err)
	if !ok {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.flags.verbose))
	if !a.flags.verbose {
		return
	}
	if guide := ae.CatalogIssue(); guide != nil {
		style := glamourStyle()
		if !isTerminal(w) {
			style = "notty"
		}
		if rendered, renderErr := guide.Render(style); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// isTerminal reports whether stream is an *os.File attached to a TTY.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
