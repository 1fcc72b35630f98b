package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"bank_system/internal/audit"
	"bank_system/internal/cache"
	"bank_system/internal/db"
	"bank_system/internal/domain"
	"bank_system/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = domain.Actor{UserID: 1, Username: "root", Role: domain.RoleAdmin}
	operator = domain.Actor{UserID: 2, Username: "teller", Role: domain.RoleOperator}
)

type fixture struct {
	engine *Engine
	store  *store.AccountStore
	audit  *audit.Log
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	gdb, err := db.OpenTest()
	require.NoError(t, err)
	s := store.NewAccountStore(gdb)
	a := audit.New(gdb)
	return fixture{engine: NewEngine(s, a, opts), store: s, audit: a}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// balanceOf reads the balance straight from the store
func (f fixture) balanceOf(t *testing.T, number string) decimal.Decimal {
	t.Helper()
	acc, err := f.store.FindAccount(context.Background(), number, false)
	require.NoError(t, err)
	return acc.Balance
}

// assertConsistent checks that the balance equals the signed sum of the history
func (f fixture) assertConsistent(t *testing.T, number string) {
	t.Helper()
	sum, err := f.store.HistorySum(context.Background(), number)
	require.NoError(t, err)
	bal := f.balanceOf(t, number)
	assert.True(t, bal.Equal(sum), "account %s balance %s != history sum %s", number, bal, sum)
}

func (f fixture) openAccount(t *testing.T, currency string, funds string) domain.Account {
	t.Helper()
	ctx := context.Background()
	c, err := f.engine.CreateClient(ctx, operator, "Client "+currency)
	require.NoError(t, err)
	acc, err := f.engine.CreateAccount(ctx, operator, c.ID, currency)
	require.NoError(t, err)
	if funds != "" {
		acc, err = f.engine.Deposit(ctx, operator, acc.Number, d(funds))
		require.NoError(t, err)
	}
	return acc
}

func (f fixture) auditActions(t *testing.T) []string {
	t.Helper()
	entries, err := f.audit.GetRecent(context.Background(), audit.MaxRecent)
	require.NoError(t, err)
	actions := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		actions = append(actions, entries[i].Action)
	}
	return actions
}

func TestAnnScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	ann, err := f.engine.CreateClient(ctx, operator, "Ann")
	require.NoError(t, err)
	assert.Equal(t, uint(1), ann.ID)

	n1, err := f.engine.CreateAccount(ctx, operator, ann.ID, "USD")
	require.NoError(t, err)
	assert.True(t, n1.Balance.IsZero())

	n1, err = f.engine.Deposit(ctx, operator, n1.Number, d("100"))
	require.NoError(t, err)
	assert.True(t, n1.Balance.Equal(d("100")))
	hist, err := f.engine.GetHistory(ctx, n1.Number)
	require.NoError(t, err)
	assert.Len(t, hist, 1)

	n2, err := f.engine.CreateAccount(ctx, operator, ann.ID, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", n2.Currency)
	assert.NotEqual(t, n1.Number, n2.Number)
	assert.True(t, n2.Balance.IsZero())

	src, dst, err := f.engine.Transfer(ctx, operator, n1.Number, n2.Number, d("40"))
	require.NoError(t, err)
	assert.True(t, src.Balance.Equal(d("60")))
	assert.True(t, dst.Balance.Equal(d("40")))
	h1, _ := f.engine.GetHistory(ctx, n1.Number)
	h2, _ := f.engine.GetHistory(ctx, n2.Number)
	assert.Len(t, h1, 2)
	assert.Len(t, h2, 1)

	_, err = f.engine.Withdraw(ctx, operator, n2.Number, d("1000"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, f.balanceOf(t, n2.Number).Equal(d("40")))

	f.assertConsistent(t, n1.Number)
	f.assertConsistent(t, n2.Number)

	owner, err := f.engine.ClientOf(ctx, n2)
	require.NoError(t, err)
	assert.Equal(t, "Ann", owner.Name)
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	acc := f.openAccount(t, "USD", "10.25")

	got, err := f.engine.Deposit(ctx, operator, acc.Number, d("0.10"))
	require.NoError(t, err)
	assert.Equal(t, "10.35", got.Balance.String())

	hist, err := f.engine.GetHistory(ctx, acc.Number)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, domain.KindDeposit, hist[1].Kind)
	assert.True(t, hist[1].Amount.Equal(d("0.10")))
	f.assertConsistent(t, acc.Number)

	for _, amt := range []string{"0", "-5"} {
		_, err := f.engine.Deposit(ctx, operator, acc.Number, d(amt))
		require.ErrorIs(t, err, domain.ErrInvalidAmount, amt)
		require.ErrorIs(t, err, domain.ErrValidation, amt)
	}
	_, err = f.engine.Deposit(ctx, operator, "SHX-00000-000", d("1"))
	require.ErrorIs(t, err, domain.ErrNotFound)

	hist, _ = f.engine.GetHistory(ctx, acc.Number)
	assert.Len(t, hist, 2, "failed deposits must not append history")
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	acc := f.openAccount(t, "EUR", "50")

	got, err := f.engine.Withdraw(ctx, operator, acc.Number, d("50"))
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())

	hist, _ := f.engine.GetHistory(ctx, acc.Number)
	require.Len(t, hist, 2)
	assert.Equal(t, domain.KindWithdraw, hist[1].Kind)
	assert.True(t, hist[1].Amount.Equal(d("-50")))

	_, err = f.engine.Withdraw(ctx, operator, acc.Number, d("0.01"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_, err = f.engine.Withdraw(ctx, operator, acc.Number, d("-1"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = f.engine.Withdraw(ctx, operator, "nope", d("1"))
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, f.balanceOf(t, acc.Number).IsZero())
	f.assertConsistent(t, acc.Number)
}

func TestTransferDoubleEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	a := f.openAccount(t, "USD", "100")
	b := f.openAccount(t, "USD", "5")

	src, dst, err := f.engine.Transfer(ctx, operator, a.Number, b.Number, d("33.33"))
	require.NoError(t, err)
	assert.True(t, src.Balance.Add(dst.Balance).Equal(d("105")))
	assert.True(t, src.Balance.Equal(d("66.67")))
	assert.True(t, dst.Balance.Equal(d("38.33")))

	ha, _ := f.engine.GetHistory(ctx, a.Number)
	hb, _ := f.engine.GetHistory(ctx, b.Number)
	out, in := ha[len(ha)-1], hb[len(hb)-1]
	assert.Equal(t, domain.KindTransferOut, out.Kind)
	assert.Equal(t, domain.KindTransferIn, in.Kind)
	assert.True(t, out.Amount.Neg().Equal(in.Amount))
	assert.Equal(t, "To "+b.Number, out.Note)
	assert.Equal(t, "From "+a.Number, in.Note)
	assert.NotEmpty(t, out.TransferRef)
	assert.Equal(t, out.TransferRef, in.TransferRef)

	f.assertConsistent(t, a.Number)
	f.assertConsistent(t, b.Number)
}

func TestTransferFailuresChangeNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	usd := f.openAccount(t, "USD", "100")
	usd2 := f.openAccount(t, "USD", "")
	eur := f.openAccount(t, "EUR", "100")

	cases := []struct {
		name     string
		from, to string
		amount   string
		want     error
	}{
		{"currency mismatch", usd.Number, eur.Number, "10", domain.ErrCurrencyMismatch},
		{"insufficient", usd.Number, usd2.Number, "100.01", domain.ErrInsufficientFunds},
		{"zero amount", usd.Number, usd2.Number, "0", domain.ErrInvalidAmount},
		{"negative amount", usd.Number, usd2.Number, "-1", domain.ErrInvalidAmount},
		{"unknown source", "missing", usd2.Number, "1", domain.ErrNotFound},
		{"unknown destination", usd.Number, "missing", "1", domain.ErrNotFound},
		{"same account", usd.Number, usd.Number, "1", domain.ErrSameAccount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.engine.Transfer(ctx, operator, tc.from, tc.to, d(tc.amount))
			require.ErrorIs(t, err, tc.want)
		})
	}

	assert.True(t, f.balanceOf(t, usd.Number).Equal(d("100")))
	assert.True(t, f.balanceOf(t, usd2.Number).IsZero())
	assert.True(t, f.balanceOf(t, eur.Number).Equal(d("100")))
	for _, n := range []string{usd.Number, usd2.Number, eur.Number} {
		f.assertConsistent(t, n)
	}
	hist, _ := f.engine.GetHistory(ctx, usd2.Number)
	assert.Empty(t, hist)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	acc := f.openAccount(t, "USD", "20")

	err := f.engine.DeleteAccount(ctx, admin, acc.Number)
	require.ErrorIs(t, err, domain.ErrNonZeroBalance)
	assert.True(t, f.balanceOf(t, acc.Number).Equal(d("20")))

	_, err = f.engine.Withdraw(ctx, operator, acc.Number, d("20"))
	require.NoError(t, err)

	err = f.engine.DeleteAccount(ctx, operator, acc.Number)
	require.ErrorIs(t, err, domain.ErrAuthorization)

	require.NoError(t, f.engine.DeleteAccount(ctx, admin, acc.Number))
	_, err = f.engine.GetAccount(ctx, acc.Number)
	require.ErrorIs(t, err, domain.ErrNotFound)

	hist, err := f.engine.GetHistory(ctx, acc.Number)
	require.NoError(t, err)
	assert.Len(t, hist, 2, "history is retained after deletion")

	err = f.engine.DeleteAccount(ctx, admin, acc.Number)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.engine.GetHistory(ctx, "SHX-99999-999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAccountValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	_, err := f.engine.CreateAccount(ctx, operator, 42, "USD")
	require.ErrorIs(t, err, domain.ErrNotFound)

	c, err := f.engine.CreateClient(ctx, operator, "Ann")
	require.NoError(t, err)
	_, err = f.engine.CreateAccount(ctx, operator, c.ID, "  ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.engine.CreateClient(ctx, operator, " ")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateAccountRetriesCollisions(t *testing.T) {
	ctx := context.Background()
	seq := []string{"SHX-11111-111", "SHX-11111-111", "SHX-11111-111", "SHX-22222-222"}
	i := 0
	f := newFixture(t, Options{Numbers: NumberFunc(func() string {
		n := seq[i]
		i++
		return n
	})})
	c, err := f.engine.CreateClient(ctx, operator, "Ann")
	require.NoError(t, err)

	first, err := f.engine.CreateAccount(ctx, operator, c.ID, "USD")
	require.NoError(t, err)
	second, err := f.engine.CreateAccount(ctx, operator, c.ID, "USD")
	require.NoError(t, err)
	assert.Equal(t, "SHX-11111-111", first.Number)
	assert.Equal(t, "SHX-22222-222", second.Number)
}

func TestCreateAccountExhausted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{
		NumberAttempts: 3,
		Numbers:        NumberFunc(func() string { return "SHX-12345-678" }),
	})
	c, _ := f.engine.CreateClient(ctx, operator, "Ann")
	_, err := f.engine.CreateAccount(ctx, operator, c.ID, "USD")
	require.NoError(t, err)

	_, err = f.engine.CreateAccount(ctx, operator, c.ID, "USD")
	require.ErrorIs(t, err, domain.ErrAccountNumberExhausted)
}

func TestDeletedNumbersAreNotReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{
		NumberAttempts: 2,
		Numbers:        NumberFunc(func() string { return "SHX-12345-678" }),
	})
	c, _ := f.engine.CreateClient(ctx, operator, "Ann")
	acc, err := f.engine.CreateAccount(ctx, operator, c.ID, "USD")
	require.NoError(t, err)
	_, err = f.engine.Deposit(ctx, operator, acc.Number, d("1"))
	require.NoError(t, err)
	_, err = f.engine.Withdraw(ctx, operator, acc.Number, d("1"))
	require.NoError(t, err)
	require.NoError(t, f.engine.DeleteAccount(ctx, admin, acc.Number))

	_, err = f.engine.CreateAccount(ctx, operator, c.ID, "USD")
	require.ErrorIs(t, err, domain.ErrAccountNumberExhausted)
}

func TestConcurrentAccountNumbersUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	c, _ := f.engine.CreateClient(ctx, operator, "Ann")

	const n = 60
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc, err := f.engine.CreateAccount(ctx, operator, c.ID, "USD")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			numbers <- acc.Number
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "duplicate number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestConcurrentOppositeTransfersConserveTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	a := f.openAccount(t, "USD", "100")
	b := f.openAccount(t, "USD", "100")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, _, err := f.engine.Transfer(ctx, operator, a.Number, b.Number, d("1")); err != nil {
				t.Errorf("a->b: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, _, err := f.engine.Transfer(ctx, operator, b.Number, a.Number, d("1")); err != nil {
				t.Errorf("b->a: %v", err)
			}
		}()
	}
	wg.Wait()

	total := f.balanceOf(t, a.Number).Add(f.balanceOf(t, b.Number))
	assert.True(t, total.Equal(d("200")), "total=%s", total)
	f.assertConsistent(t, a.Number)
	f.assertConsistent(t, b.Number)
}

func TestConcurrentDebitsCannotOverdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	src := f.openAccount(t, "USD", "100")
	dst := f.openAccount(t, "USD", "")

	const n = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, _, err = f.engine.Transfer(ctx, operator, src.Number, dst.Number, d("10"))
			} else {
				_, err = f.engine.Withdraw(ctx, operator, src.Number, d("10"))
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientFunds):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, n-10, insufficient)
	assert.True(t, f.balanceOf(t, src.Number).IsZero())
	f.assertConsistent(t, src.Number)
	f.assertConsistent(t, dst.Number)
}

func TestAuditPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	a := f.openAccount(t, "USD", "10")
	b := f.openAccount(t, "USD", "")

	_, _, err := f.engine.Transfer(ctx, operator, a.Number, b.Number, d("10"))
	require.NoError(t, err)
	_, err = f.engine.Withdraw(ctx, operator, a.Number, d("1"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_, err = f.engine.Deposit(ctx, domain.Actor{}, a.Number, d("1"))
	require.ErrorIs(t, err, domain.ErrAuthorization)
	require.NoError(t, f.engine.DeleteAccount(ctx, admin, a.Number))

	assert.Equal(t, []string{
		domain.ActionCreateClient, domain.ActionCreateAccount, domain.ActionDeposit,
		domain.ActionCreateClient, domain.ActionCreateAccount,
		domain.ActionTransfer,
		domain.ActionAccessDenied,
		domain.ActionDeleteAccount,
	}, f.auditActions(t))

	entries, err := f.audit.GetRecent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "root", entries[0].Actor)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	ann, _ := f.engine.CreateClient(ctx, operator, "Ann")
	bob, _ := f.engine.CreateClient(ctx, operator, "Bob")
	_, err := f.engine.CreateAccount(ctx, operator, ann.ID, "USD")
	require.NoError(t, err)
	_, err = f.engine.CreateAccount(ctx, operator, ann.ID, "EUR")
	require.NoError(t, err)
	_, err = f.engine.CreateAccount(ctx, operator, bob.ID, "RUB")
	require.NoError(t, err)

	clients, err := f.engine.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	views, err := f.engine.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Ann", views[0].ClientName)
	assert.Equal(t, "Bob", views[2].ClientName)

	owned, err := f.engine.ListClientAccounts(ctx, ann.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
	_, err = f.engine.ListClientAccounts(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCachedReadsInvalidatedOnCommit(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	f := newFixture(t, Options{Cache: cache.NewRedis(rdb)})
	acc := f.openAccount(t, "USD", "5")

	got, err := f.engine.GetAccount(ctx, acc.Number)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(d("5")))
	_, err = f.engine.GetHistory(ctx, acc.Number)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.AccountKey(acc.Number)))
	assert.True(t, mr.Exists(cache.HistoryKey(acc.Number)))

	_, err = f.engine.Deposit(ctx, operator, acc.Number, d("7"))
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.AccountKey(acc.Number)))

	got, err = f.engine.GetAccount(ctx, acc.Number)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(d("12")))
	hist, err := f.engine.GetHistory(ctx, acc.Number)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

// caseInsensitiveFixture recreates the accounts table with a collation
// that ignores case, as MySQL's default one does
func caseInsensitiveFixture(t *testing.T) fixture {
	t.Helper()
	gdb, err := db.OpenTest()
	require.NoError(t, err)
	require.NoError(t, gdb.Migrator().DropTable(&domain.Account{}))
	require.NoError(t, gdb.Exec(`CREATE TABLE accounts (
		id integer PRIMARY KEY AUTOINCREMENT,
		number text NOT NULL COLLATE NOCASE UNIQUE,
		currency text NOT NULL,
		balance varchar(40) NOT NULL,
		client_id integer NOT NULL,
		created_at datetime,
		updated_at datetime
	)`).Error)
	s := store.NewAccountStore(gdb)
	a := audit.New(gdb)
	return fixture{engine: NewEngine(s, a, Options{}), store: s, audit: a}
}

func TestTransferBetweenSpellingsOfOneAccount(t *testing.T) {
	ctx := context.Background()
	f := caseInsensitiveFixture(t)
	acc := f.openAccount(t, "USD", "100")
	alias := strings.ToLower(acc.Number)

	_, _, err := f.engine.Transfer(ctx, operator, alias, acc.Number, d("50"))
	require.ErrorIs(t, err, domain.ErrSameAccount)
	_, _, err = f.engine.Transfer(ctx, operator, acc.Number, " "+alias+" ", d("50"))
	require.ErrorIs(t, err, domain.ErrSameAccount)

	assert.True(t, f.balanceOf(t, acc.Number).Equal(d("100")))
	f.assertConsistent(t, acc.Number)

	got, err := f.engine.Deposit(ctx, operator, alias, d("1"))
	require.NoError(t, err)
	assert.Equal(t, acc.Number, got.Number)
	hist, err := f.engine.GetHistory(ctx, alias)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, acc.Number, hist[1].AccountNumber)
	f.assertConsistent(t, acc.Number)
}

func TestAliasedMutationInvalidatesCanonicalKeys(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	f := newFixture(t, Options{Cache: cache.NewRedis(rdb)})
	acc := f.openAccount(t, "USD", "")

	_, err := f.engine.GetAccount(ctx, acc.Number)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.AccountKey(acc.Number)))

	require.NoError(t, f.engine.DeleteAccount(ctx, admin, strings.ToLower(acc.Number)))
	assert.False(t, mr.Exists(cache.AccountKey(acc.Number)))
	_, err = f.engine.GetAccount(ctx, acc.Number)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnginesSharingACacheSeeEachOthersWrites(t *testing.T) {
	ctx := context.Background()
	gdb, err := db.OpenTest()
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	shared := cache.NewRedis(rdb)

	s := store.NewAccountStore(gdb)
	log := audit.New(gdb)
	server := NewEngine(s, log, Options{Cache: shared})
	cli := NewEngine(s, log, Options{Cache: shared})

	c, err := cli.CreateClient(ctx, operator, "Ann")
	require.NoError(t, err)
	acc, err := cli.CreateAccount(ctx, operator, c.ID, "USD")
	require.NoError(t, err)

	_, err = server.GetAccount(ctx, acc.Number)
	require.NoError(t, err)
	require.NoError(t, cli.DeleteAccount(ctx, admin, acc.Number))

	_, err = server.GetAccount(ctx, acc.Number)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
