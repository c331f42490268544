package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/common"
)

// Profile fetches and displays the authoritative account record. The fetch
// also refreshes the local credit balance shown in the prompt.
func (a *App) Profile(ctx context.Context) error {
	a.session.FetchProfile(ctx)

	user := a.session.User()
	if user == nil {
		printlnFn("Sessão expirada, faça login novamente.")
		return nil
	}

	printlnFn(fmt.Sprintf("Nome:     %s", user.Name))
	printlnFn(fmt.Sprintf("E-mail:   %s", user.Email))
	printlnFn(fmt.Sprintf("Plano:    %s", user.Plan))
	printlnFn(fmt.Sprintf("Créditos: %d", user.Credits))
	return nil
}

// UpdateProfile prompts for the mutable fields and submits a partial update.
// Fields left empty keep their current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Nome (vazio para manter)", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Telefone (vazio para manter)", os.Stdout)
	if err != nil {
		return err
	}

	res := a.session.UpdateProfile(ctx, models.ProfileUpdate{Name: name, Phone: phone})
	if !res.OK {
		printlnFn(res.Message)
		return nil
	}

	printlnFn("Perfil atualizado!")
	return nil
}

// Dashboard shows the account's aggregate numbers and most recent analyses.
func (a *App) Dashboard(ctx context.Context) error {
	dash, err := a.account.Dashboard(ctx)
	if err != nil {
		printlnFn("Erro ao carregar o painel.")
		return err
	}

	printlnFn(fmt.Sprintf("Análises:      %d", dash.Stats.TotalAnalyses))
	printlnFn(fmt.Sprintf("Relatórios IA: %d", dash.Stats.TotalLLMResponses))
	printlnFn(fmt.Sprintf("Créditos usados: %d", dash.Stats.CreditsUsed))
	printlnFn(fmt.Sprintf("Públicas:      %d", dash.Stats.PublicAnalyses))

	if len(dash.RecentAnalyses) > 0 {
		printlnFn("Recentes:")
		for _, item := range dash.RecentAnalyses {
			printlnFn(fmt.Sprintf("  %s  %-10s  %s", item.CreatedAt.Format("02/01/2006"), item.Status, item.ID))
		}
	}
	return nil
}

// SettingsCmd shows the account settings, or updates one of them:
//
//	settings                          show current settings
//	settings notifications <on|off>   toggle e-mail notifications
//	settings language <code>          set the report language
func (a *App) SettingsCmd(ctx context.Context, args []string) error {
	settings, err := a.account.Settings(ctx)
	if err != nil {
		printlnFn("Erro ao carregar as configurações.")
		return err
	}

	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Notificações: %s", onOff(settings.Notifications)))
		printlnFn(fmt.Sprintf("Idioma:       %s", settings.Language))
		return nil
	}

	switch args[0] {
	case "notifications":
		if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
			printlnFn("Uso: settings notifications <on|off>")
			return nil
		}
		settings.Notifications = args[1] == "on"
	case "language":
		if len(args) < 2 {
			printlnFn("Uso: settings language <código>")
			return nil
		}
		settings.Language = strings.ToLower(args[1])
	default:
		printlnFn("Uso: settings [notifications <on|off> | language <código>]")
		return nil
	}

	if _, err := a.account.UpdateSettings(ctx, *settings); err != nil {
		printlnFn("Erro ao salvar as configurações.")
		return err
	}
	printlnFn("Configurações salvas!")
	return nil
}

// Deactivate permanently deactivates the account after a confirmation and a
// password check, then signs the user out.
func (a *App) Deactivate(ctx context.Context) error {
	ok, err := getConfirm(a.reader, "Tem certeza? Esta ação não pode ser desfeita.", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Operação cancelada.")
		return nil
	}

	password, err := getPassword(os.Stdout, "Confirme sua senha")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.account.Deactivate(ctx, string(password)); err != nil {
		printlnFn("Erro ao desativar a conta.")
		return err
	}

	printlnFn("Conta desativada.")
	return a.Logout(ctx)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
