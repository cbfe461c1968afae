package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/iho/gowallet/internal/adapter/http/dto"
)

func renderTable(out io.Writer, data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s)
	return err
}

func renderWallet(out io.Writer, w *dto.WalletResponse) error {
	return renderWallets(out, []*dto.WalletResponse{w})
}

func renderWallets(out io.Writer, wallets []*dto.WalletResponse) error {
	data := pterm.TableData{{"ID", "Account", "Balance", "Updated"}}
	for _, w := range wallets {
		data = append(data, []string{w.ID, w.AccountID, w.Balance, w.UpdatedAt.Format(time.RFC3339)})
	}
	return renderTable(out, data)
}

// renderTransactions keeps the server's (timestamp, id) order.
func renderTransactions(out io.Writer, records []*dto.TransactionResponse) error {
	data := pterm.TableData{{"Time", "ID", "Type", "Amount", "Wallet", "Related"}}
	for _, r := range records {
		related := "-"
		if r.RelatedWalletID != nil {
			related = *r.RelatedWalletID
		}
		data = append(data, []string{
			r.Timestamp.Format(time.RFC3339Nano), r.ID, r.Type, r.Amount, r.WalletID, related,
		})
	}
	return renderTable(out, data)
}

func renderReconciliations(out io.Writer, results []*dto.ReconciliationResponse) error {
	data := pterm.TableData{{"Wallet", "Recorded", "Calculated", "Difference", "Records", "OK"}}
	for _, r := range results {
		data = append(data, []string{
			r.WalletID, r.RecordedBalance, r.CalculatedBalance, r.Difference,
			fmt.Sprint(r.RecordCount), fmt.Sprint(r.Reconciled),
		})
	}
	return renderTable(out, data)
}
