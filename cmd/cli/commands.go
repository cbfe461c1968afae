package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/iho/gowallet/internal/adapter/http/dto"
)

type clientFactory func() *apiClient

func newWalletCmd(out io.Writer, client clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	createCmd := &cobra.Command{
		Use:   "create <account-id>",
		Short: "Create a wallet for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := client().CreateWallet(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}
			return renderWallet(out, w)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <wallet-id>",
		Short: "Show a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := client().GetWallet(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get wallet: %w", err)
			}
			return renderWallet(out, w)
		},
	}

	var limit, offset int
	var account string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := client().ListWallets(cmd.Context(), limit, offset, account)
			if err != nil {
				return fmt.Errorf("failed to list wallets: %w", err)
			}
			return renderWallets(out, l.Wallets)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	listCmd.Flags().StringVar(&account, "account", "", "Only the wallet owned by this account id")

	balanceCmd := &cobra.Command{
		Use:   "balance <wallet-id>",
		Short: "Show the current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := client().Balance(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get balance: %w", err)
			}
			fmt.Fprintln(out, b.Balance)
			return nil
		},
	}

	var at string
	historyBalanceCmd := &cobra.Command{
		Use:   "history-balance <wallet-id>",
		Short: "Show the balance at a point in time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := time.Parse(time.RFC3339Nano, at)
			if err != nil {
				return fmt.Errorf("invalid --at %q: expected RFC3339", at)
			}
			b, err := client().HistoricalBalance(cmd.Context(), args[0], ts)
			if err != nil {
				return fmt.Errorf("failed to get historical balance: %w", err)
			}
			fmt.Fprintf(out, "%s at %s\n", b.Balance, b.Timestamp.Format(time.RFC3339Nano))
			return nil
		},
	}
	historyBalanceCmd.Flags().StringVar(&at, "at", "", "Point in time (RFC3339)")
	_ = historyBalanceCmd.MarkFlagRequired("at")

	cmd.AddCommand(createCmd, getCmd, listCmd, balanceCmd, historyBalanceCmd)
	return cmd
}

func newMoveCmd(out io.Writer, client clientFactory, kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <wallet-id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := client().Move(cmd.Context(), kind, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to %s: %w", kind, err)
			}
			return renderTransactions(out, []*dto.TransactionResponse{r})
		},
	}
}

func newDepositCmd(out io.Writer, client clientFactory) *cobra.Command {
	return newMoveCmd(out, client, "deposit", "Credit a wallet")
}

func newWithdrawCmd(out io.Writer, client clientFactory) *cobra.Command {
	return newMoveCmd(out, client, "withdraw", "Debit a wallet")
}

func newTransferCmd(out io.Writer, client clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from-wallet-id> <to-wallet-id> <amount>",
		Short: "Move funds between wallets",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := client().Transfer(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("failed to transfer: %w", err)
			}
			return renderTransactions(out, []*dto.TransactionResponse{r})
		},
	}
}

func newHistoryCmd(out io.Writer, client clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "history <wallet-id>",
		Short: "List the transactions filed against a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := client().History(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}
			if len(l.Transactions) == 0 {
				fmt.Fprintln(out, "No transactions")
				return nil
			}
			return renderTransactions(out, l.Transactions)
		},
	}
}

func newReconcileCmd(out io.Writer, client clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [wallet-id]",
		Short: "Replay records and compare with stored balances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				r, err := client().ReconcileWallet(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to reconcile wallet: %w", err)
				}
				if err := renderReconciliations(out, []*dto.ReconciliationResponse{r}); err != nil {
					return err
				}
				if !r.Reconciled {
					return errors.New("wallet balance does not match its records")
				}
				return nil
			}

			report, err := client().ReconcileAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to reconcile ledger: %w", err)
			}
			fmt.Fprintf(out, "Reconciled %d of %d wallets\n", report.ReconciledWallets, report.TotalWallets)
			if len(report.Discrepancies) > 0 {
				if err := renderReconciliations(out, report.Discrepancies); err != nil {
					return err
				}
				return fmt.Errorf("%d wallets have discrepancies", len(report.Discrepancies))
			}
			return nil
		},
	}
}

func newConsistencyCmd(out io.Writer, client clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := client().Consistency(cmd.Context())
			if err != nil {
				return fmt.Errorf("consistency check failed: %w", err)
			}

			fmt.Fprintf(out, "Total balance: %s\nNet flow:      %s\n", r.TotalBalance, r.NetFlow)
			if !r.Consistent {
				return errors.New("consistency check FAILED")
			}
			fmt.Fprintln(out, "Consistency check PASSED")
			return nil
		},
	}
}

func newHealthCmd(out io.Writer, client clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := client().Ready(cmd.Context())
			if err != nil {
				return fmt.Errorf("server not ready: %w", err)
			}

			components := make([]string, 0, len(r))
			for k := range r {
				components = append(components, k)
			}
			sort.Strings(components)

			data := pterm.TableData{{"Component", "Status"}}
			for _, k := range components {
				data = append(data, []string{k, r[k]})
			}
			return renderTable(out, data)
		},
	}
}
