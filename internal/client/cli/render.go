package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/usershelf/usershelf/internal/common"
)

var (
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.Bold)
)

// render prints st to w. retryHint is printed after a retryable error.
func render(w io.Writer, st State, retryHint string) {
	switch st.Phase {
	case PhaseIdle:
		fmt.Fprintln(w, "No load yet.")
	case PhaseLoading:
		fmt.Fprintln(w, "Loading...")
	case PhaseSuccess:
		renderUsers(w, st)
	case PhaseError:
		errorColor.Fprintf(w, "Error: %s\n", common.Message(st.Err))
		if retryHint != "" && common.Retryable(st.Err) {
			fmt.Fprintln(w, retryHint)
		}
	}
}

func renderUsers(w io.Writer, st State) {
	if st.Warning != nil {
		warningColor.Fprintf(w, "Warning: %s\n", common.Message(st.Warning))
	}
	if len(st.Users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}

	headerColor.Fprintf(w, "%-28s %s\n", "NAME", "EMAIL")
	for _, u := range st.Users {
		fmt.Fprintf(w, "%-28s %s\n", u.DisplayName, u.Email)
	}
}
