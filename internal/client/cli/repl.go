package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophshelf/internal/logging"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Find(ctx context.Context, query string) error
	Download(ctx context.Context, n int) error
	Delete(ctx context.Context, n int) error
	Upload(ctx context.Context) error

	Read(ctx context.Context, n int) error
	More(ctx context.Context) error
	SetFontSize(ctx context.Context, v float64) error
	SetLineHeight(ctx context.Context, v float64) error

	Profile(ctx context.Context) error
	SetName(ctx context.Context) error
	SetPhoto(ctx context.Context) error
	SaveAvatar(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the GophShelf CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Numeric arguments are validated here; a
// malformed one prints the command usage. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               - show available commands
//	  - register           - create an account
//	  - login              - authenticate
//	  - exit | quit        - leave the program
//
//	Logged in:
//	  - (l)ist | books     - list the library
//	  - find <text>        - filter the library by title or author
//	  - get <n>            - download book n
//	  - delete <n>         - delete the local copy of book n
//	  - upload             - upload a book file
//	  - read <n>           - open downloaded book n
//	  - more               - next page of the open book
//	  - font <size>        - change the font size
//	  - lineheight <value> - change the line height
//	  - profile            - show the profile
//	  - setname            - change first and last name
//	  - setphoto           - upload a new avatar
//	  - avatar             - save the avatar to a file
//	  - logout             - log out
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		ctx := logging.ContextWith(ctx, "cmd", cmd)

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, find, get, delete, upload, read, more, font, lineheight, profile, setname, setphoto, avatar, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list", "books":
			cmdErr = a.List(ctx)

		case "find":
			cmdErr = a.Find(ctx, strings.Join(args, " "))

		case "get", "download":
			n, ok := intArg(args, "Usage: get <n>")
			if !ok {
				continue
			}
			cmdErr = a.Download(ctx, n)

		case "delete":
			n, ok := intArg(args, "Usage: delete <n>")
			if !ok {
				continue
			}
			cmdErr = a.Delete(ctx, n)

		case "upload":
			cmdErr = a.Upload(ctx)

		case "read":
			n, ok := intArg(args, "Usage: read <n>")
			if !ok {
				continue
			}
			cmdErr = a.Read(ctx, n)

		case "more", "m":
			cmdErr = a.More(ctx)

		case "font":
			v, ok := floatArg(args, "Usage: font <size>")
			if !ok {
				continue
			}
			cmdErr = a.SetFontSize(ctx, v)

		case "lineheight":
			v, ok := floatArg(args, "Usage: lineheight <value>")
			if !ok {
				continue
			}
			cmdErr = a.SetLineHeight(ctx, v)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "setname":
			cmdErr = a.SetName(ctx)

		case "setphoto":
			cmdErr = a.SetPhoto(ctx)

		case "avatar":
			cmdErr = a.SaveAvatar(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func intArg(args []string, usage string) (int, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		printlnFn(usage)
		return 0, false
	}
	return n, true
}

func floatArg(args []string, usage string) (float64, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		printlnFn(usage)
		return 0, false
	}
	return v, true
}
