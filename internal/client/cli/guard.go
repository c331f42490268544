package cli

import (
	"context"
	"strings"
)

// protectedCommands lists the commands that require an authenticated
// session. Running one while anonymous triggers a login prompt; the command
// is remembered and replayed after the login succeeds.
var protectedCommands = map[string]bool{
	"upload":       true,
	"status":       true,
	"show":         true,
	"history":      true,
	"dashboard":    true,
	"profile":      true,
	"update":       true,
	"refresh":      true,
	"share":        true,
	"credits":      true,
	"buy":          true,
	"transactions": true,
	"settings":     true,
	"deactivate":   true,
}

// Dispatch parses one input line and runs the matching command. It returns
// true when the REPL should exit.
//
// Errors returned by command handlers are ignored here; handlers print their
// own messages. This keeps the loop resilient and focused on I/O.
func (a *App) Dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := parts[0], parts[1:]

	if cmd == "exit" || cmd == "quit" {
		printlnFn("Até logo!")
		return true
	}

	if protectedCommands[cmd] && !a.isLoggedIn() {
		a.pendingLine = line
		printlnFn("Faça login para continuar.")
		_ = a.Login(ctx)
		return false
	}

	switch cmd {
	case "help":
		a.help()
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "activate":
		_ = a.Activate(ctx, args)
	case "shared":
		_ = a.ViewShared(ctx, args)
	case "plans":
		_ = a.Plans(ctx)
	case "upload":
		_ = a.Upload(ctx, args)
	case "status":
		_ = a.UploadStatus(ctx, args)
	case "show":
		_ = a.Show(ctx, args)
	case "history":
		_ = a.History(ctx, args)
	case "dashboard":
		_ = a.Dashboard(ctx)
	case "profile":
		_ = a.Profile(ctx)
	case "update":
		_ = a.UpdateProfile(ctx)
	case "refresh":
		_ = a.Refresh(ctx)
	case "share":
		_ = a.Share(ctx, args)
	case "credits":
		_ = a.Balance(ctx)
	case "buy":
		_ = a.Purchase(ctx, args)
	case "transactions":
		_ = a.Transactions(ctx)
	case "settings":
		_ = a.SettingsCmd(ctx, args)
	case "deactivate":
		_ = a.Deactivate(ctx)
	default:
		printlnFn("Comando desconhecido:", cmd)
	}
	return false
}

// resume replays the command that was interrupted by a login prompt. Called
// by Login and Register after the session is established.
func (a *App) resume(ctx context.Context) {
	if a.pendingLine == "" {
		return
	}
	line := a.pendingLine
	a.pendingLine = ""
	a.Dispatch(ctx, line)
}

func (a *App) help() {
	if a.isLoggedIn() {
		printlnFn("Comandos: upload, status, show, history, dashboard, profile, update, share, shared, plans, credits, buy, transactions, settings, refresh, deactivate, logout, exit")
	} else {
		printlnFn("Comandos: register, login, activate, shared, plans, exit")
	}
}
