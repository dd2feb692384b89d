package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

func (a *App) status() string {
	if a.token != "" {
		return "(logged in) "
	}
	return ""
}

// shell reads commands from the app's reader until EOF or exit.
func (a *App) shell(ctx context.Context) {
	fmt.Fprintln(a.out, "gophauth CLI (type 'help' for commands)")
	runREPL(ctx, a.reader, a.out, a.status, func(args []string) {
		a.dispatch(ctx, args)
	})
}

// runREPL reads a line, splits it into fields and hands them to exec.
// The loop exits on EOF, "exit" or "quit". Command failures are reported by
// exec itself, so the loop keeps going.
//
// Lines are read straight from r rather than through a Scanner: commands
// prompt on the same reader and must see the bytes that follow.
func runREPL(ctx context.Context, r *bufio.Reader, w io.Writer, statusFn func() string, exec func([]string)) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "gophauth %s> ", statusFn())

		line, err := r.ReadString('\n')
		if parts := strings.Fields(line); len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(w, "Bye!")
				return
			default:
				exec(parts)
			}
		}
		if err != nil {
			return
		}
	}
}
