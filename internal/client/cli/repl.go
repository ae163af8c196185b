package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Setup(ctx context.Context) error
	Navigate(ctx context.Context, path string) error
	Products(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, go <path>, help, exit"
	helpLoggedIn  = "Available commands: whoami, setup, go <path>, products [mine|show <id>|add|delete <id>], " +
		"notifications [read <id>|read-all|delete <id>], settings [profile|password|notify|photo <file>], refresh, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or when the user types "exit" or "quit". A failing
// command prints its error and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shopnet %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "setup":
			cmdErr = a.Setup(ctx)

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			cmdErr = a.Navigate(ctx, args[0])

		case "products", "p":
			cmdErr = a.Products(ctx, args)

		case "notifications", "n":
			cmdErr = a.Notifications(ctx, args)

		case "settings":
			cmdErr = a.Settings(ctx, args)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}

		if err != nil {
			return
		}
	}
}
