package cli

import (
	"context"
	"fmt"
)

// Plans lists the credit packages available for purchase. Works without
// login, matching the public pricing page.
func (a *App) Plans(ctx context.Context) error {
	plans, err := a.credits.Plans(ctx)
	if err != nil {
		printlnFn("Erro ao carregar os planos.")
		return err
	}

	for _, plan := range plans {
		marker := " "
		if plan.Popular {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %-12s R$ %7.2f  %d crédito(s)  [%s]", marker, plan.Name, plan.Price, plan.Credits, plan.ID))
	}
	printlnFn("Use 'buy <id>' para comprar.")
	return nil
}

// Balance fetches the authoritative credit balance.
func (a *App) Balance(ctx context.Context) error {
	credits, err := a.credits.Balance(ctx)
	if err != nil {
		printlnFn("Erro ao consultar os créditos.")
		return err
	}

	printlnFn(fmt.Sprintf("Você tem %d crédito(s).", credits))
	return nil
}

// Purchase starts a credit package purchase.
func (a *App) Purchase(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Uso: buy <id do plano>")
		return nil
	}

	if err := a.credits.Purchase(ctx, args[0]); err != nil {
		printlnFn("Erro ao iniciar a compra.")
		return err
	}

	printlnFn("Compra iniciada! Siga as instruções de pagamento enviadas por e-mail.")
	return nil
}

// Transactions lists the credit ledger: purchases, consumption and refunds.
func (a *App) Transactions(ctx context.Context) error {
	resp, err := a.credits.History(ctx, 1, historyPageSize)
	if err != nil {
		printlnFn("Erro ao carregar o extrato.")
		return err
	}

	if len(resp.Events) == 0 {
		printlnFn("Nenhuma movimentação ainda.")
		return nil
	}
	for _, event := range resp.Events {
		printlnFn(fmt.Sprintf("%s  %+4d  %s", event.CreatedAt.Format("02/01/2006"), event.Amount, event.Description))
	}
	return nil
}
