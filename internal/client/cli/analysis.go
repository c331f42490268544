package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/services"
	"github.com/testematch/cli/internal/common"
)

// Upload starts a new analysis. The plan defaults to basic; "upload complete"
// selects the full report. The credit check happens locally before any
// network call so the user is told immediately when the balance is short.
func (a *App) Upload(ctx context.Context, args []string) error {
	plan := services.PlanBasic
	if len(args) > 0 {
		plan = args[0]
	}
	if plan != services.PlanBasic && plan != services.PlanComplete {
		printlnFn("Uso: upload [basic|complete]")
		return nil
	}

	analysis, err := a.analyses.Submit(ctx, plan)
	if err != nil {
		if errors.Is(err, common.ErrInsufficientCredits) {
			printlnFn(fmt.Sprintf("Créditos insuficientes: o plano %s custa %d crédito(s). Use 'plans' para ver os pacotes.", plan, services.PlanCost(plan)))
			return nil
		}
		printlnFn("Erro ao enviar análise.")
		return err
	}

	// A 2xx with an empty body still means the upload was accepted.
	if analysis == nil {
		printlnFn("Análise enviada! Acompanhe com 'history'.")
		return nil
	}

	printlnFn(fmt.Sprintf("Análise %s enviada (%s). Acompanhe com 'status %s'.", analysis.ID, analysis.Status, analysis.ID))
	return nil
}

// UploadStatus reports the processing progress of one analysis.
func (a *App) UploadStatus(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Uso: status <id>")
		return nil
	}

	status, err := a.analyses.Status(ctx, args[0])
	if err != nil {
		printlnFn("Erro ao consultar o status.")
		return err
	}

	printlnFn(fmt.Sprintf("%s: %s (%d%%)", status.ID, status.Status, status.Progress))
	return nil
}

// Show displays one analysis, falling back to the local cache when the
// server is unreachable.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Uso: show <id>")
		return nil
	}

	analysis, err := a.analyses.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("Análise não encontrada.")
			return nil
		}
		printlnFn("Erro ao carregar a análise.")
		return err
	}

	printAnalysis(analysis)
	return nil
}

// History lists past analyses, newest first. "history 2" shows page 2; when
// offline the cached copy is shown instead.
func (a *App) History(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			printlnFn("Uso: history [página]")
			return nil
		}
		page = n
	}

	resp, fromCache, err := a.analyses.History(ctx, page, historyPageSize)
	if err != nil {
		printlnFn("Erro ao carregar o histórico.")
		return err
	}

	if fromCache {
		printlnFn("Servidor indisponível, mostrando dados locais:")
	}
	if len(resp.Analyses) == 0 {
		printlnFn("Nenhuma análise ainda. Use 'upload' para começar.")
		return nil
	}
	for _, item := range resp.Analyses {
		printlnFn(fmt.Sprintf("%s  %-10s  %-8s  %s", item.CreatedAt.Format("02/01/2006"), item.Status, item.Plan, item.ID))
	}
	if p := resp.Pagination; p != nil && p.Pages > 1 {
		printlnFn(fmt.Sprintf("Página %d de %d", p.Page, p.Pages))
	}
	return nil
}

const historyPageSize = 10

// Share toggles public sharing of an analysis. "share <id> on" publishes it
// and prints the share token, "share <id> off" makes it private again.
func (a *App) Share(ctx context.Context, args []string) error {
	if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
		printlnFn("Uso: share <id> <on|off>")
		return nil
	}
	id, public := args[0], args[1] == "on"

	if err := a.analyses.SetPublic(ctx, id, public); err != nil {
		printlnFn("Erro ao alterar o compartilhamento.")
		return err
	}

	if !public {
		printlnFn("Análise agora é privada.")
		return nil
	}

	analysis, err := a.analyses.Get(ctx, id)
	if err == nil && analysis.ShareToken != "" {
		printlnFn(fmt.Sprintf("Análise pública! Token de compartilhamento: %s", analysis.ShareToken))
	} else {
		printlnFn("Análise pública!")
	}
	return nil
}

// ViewShared displays a publicly shared analysis by its share token. No
// login is required.
func (a *App) ViewShared(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Uso: shared <token>")
		return nil
	}

	analysis, err := a.analyses.Shared(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("Análise compartilhada não encontrada.")
			return nil
		}
		printlnFn("Erro ao carregar a análise compartilhada.")
		return err
	}

	printAnalysis(analysis)
	return nil
}

func printAnalysis(analysis *models.Analysis) {
	printlnFn(fmt.Sprintf("Análise %s", analysis.ID))
	printlnFn(fmt.Sprintf("  Plano:   %s", analysis.Plan))
	printlnFn(fmt.Sprintf("  Status:  %s", analysis.Status))
	printlnFn(fmt.Sprintf("  Enviada: %s", analysis.CreatedAt.Format("02/01/2006 15:04")))
	if analysis.IsPublic && analysis.ShareToken != "" {
		printlnFn(fmt.Sprintf("  Token:   %s", analysis.ShareToken))
	}
	if analysis.Status == models.AnalysisStatusCompleted && len(analysis.Result) > 0 {
		printlnFn(string(analysis.Result))
	}
}
