// Package dashboard renders a periodically refreshed view of the largest
// accounts.
package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"text/tabwriter"
	"time"

	"bank_system/internal/domain"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TopN is the number of accounts shown
const TopN = 8

// Source lists accounts with their owner's name
type Source interface {
	ListAccounts(ctx context.Context) ([]domain.AccountView, error)
}

// Row is one rendered line
type Row struct {
	Client  string
	Number  string
	Balance string
}

// RenderFunc draws one frame
type RenderFunc func(rows []Row, at time.Time) error

// Top returns the n largest accounts by balance, ties broken by number
func Top(accounts []domain.AccountView, n int) []domain.AccountView {
	sorted := slices.Clone(accounts)
	slices.SortFunc(sorted, func(a, b domain.AccountView) int {
		if c := b.Balance.Cmp(a.Balance); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Snapshot reads the source once and formats the top rows
func Snapshot(ctx context.Context, src Source) ([]Row, error) {
	accounts, err := src.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	top := Top(accounts, TopN)
	rows := make([]Row, len(top))
	for i, a := range top {
		name := a.ClientName
		if name == "" {
			name = "?"
		}
		rows[i] = Row{Client: name, Number: a.Number, Balance: FormatMoney(a.Balance, a.Currency)}
	}
	return rows, nil
}

// Run renders a snapshot every interval until ctx is cancelled. A failed
// read is logged and retried on the next tick; a failed render stops the loop.
func Run(ctx context.Context, src Source, interval time.Duration, render RenderFunc) error {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		rows, err := Snapshot(ctx, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logrus.WithError(err).Warn("Dashboard refresh failed")
		} else if err := render(rows, time.Now()); err != nil {
			return fmt.Errorf("render dashboard: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// FormatMoney renders amount in the conventional notation of currency.
// Unknown codes fall back to two decimals followed by the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		// go-money counts minor units in an int64
		return amount.StringFixed(int32(cur.Fraction)) + " " + currency
	}
	return cur.Formatter().Format(minor.IntPart())
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Table returns a RenderFunc writing an aligned table to w
func Table(w io.Writer) RenderFunc {
	return func(rows []Row, at time.Time) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CLIENT\tACCOUNT\tBALANCE")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Client, r.Number, r.Balance)
		}
		fmt.Fprintf(tw, "Last sync: %s\n", at.Format("15:04:05"))
		return tw.Flush()
	}
}
