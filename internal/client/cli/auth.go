package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/common"
)

// getSimpleText, getPassword and getConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirm = GetConfirm

// Login prompts for credentials and authenticates. On failure the server's
// message (or the generic fallback) is printed and the session stays
// anonymous. On success any command interrupted by the login prompt is
// replayed.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, email, string(password))
	if !res.OK {
		printlnFn(res.Message)
		return nil
	}

	printlnFn("Login realizado!")
	a.resume(ctx)
	return nil
}

// Register prompts for the signup fields and creates an account. A
// successful registration signs the user in on the spot, so the remembered
// command (if any) is replayed just like after a login.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Nome", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "E-mail", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Telefone (opcional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Register(ctx, models.RegisterRequest{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(password),
	})
	if !res.OK {
		printlnFn(res.Message)
		return nil
	}

	printlnFn("Conta criada!")
	a.resume(ctx)
	return nil
}

// Logout signs out and wipes the local analysis cache. It never fails from
// the user's point of view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	if err := a.analyses.ClearCache(ctx); err != nil {
		a.log.Warn(ctx, "error clearing local cache", "error", err)
	}
	a.pendingLine = ""
	printlnFn("Sessão encerrada.")
	return nil
}

// Activate completes the post-purchase account setup: the user arrives with
// an id from the activation link, sets a password, and is signed in when the
// backend returns a token.
func (a *App) Activate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Uso: activate <id>")
		return nil
	}
	userID := args[0]

	info, err := a.activation.Info(ctx, userID)
	if err != nil {
		printlnFn("Link de ativação inválido ou expirado.")
		return err
	}

	req := models.SetupPasswordRequest{}
	if info.NeedsEmail {
		email, err := getSimpleText(a.reader, "E-mail", os.Stdout)
		if err != nil {
			return err
		}
		req.Email = email
	} else {
		printlnFn(fmt.Sprintf("Ativando conta de %s", info.Email))
	}

	password, err := getPassword(os.Stdout, "Nova senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	user, err := a.activation.Complete(ctx, userID, req)
	if err != nil {
		printlnFn("Erro ao ativar conta.")
		return err
	}

	if a.isLoggedIn() {
		printlnFn(fmt.Sprintf("Conta ativada! Bem-vindo, %s.", user.Name))
	} else {
		printlnFn("Conta ativada! Faça login para continuar.")
	}
	return nil
}

// Refresh forces a token rotation, e.g. before a long-running upload.
func (a *App) Refresh(ctx context.Context) error {
	res := a.session.RefreshToken(ctx)
	if !res.OK {
		printlnFn("Sessão expirada, faça login novamente.")
		return nil
	}
	printlnFn("Sessão renovada.")
	return nil
}
