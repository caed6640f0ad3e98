package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kantong/internal/models"
)

// fakeStore is an in-memory LedgerStore with the same visibility rules as
// the SQL one: a unit of work sees its own writes, and a failed unit leaves
// no trace.
type fakeStore struct {
	mu           sync.Mutex
	wallets      map[int]*models.Wallet
	categories   map[int]*models.Category
	transactions map[int]*models.Transaction
	nextCatID    int
	nextTxID     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets:      make(map[int]*models.Wallet),
		categories:   make(map[int]*models.Category),
		transactions: make(map[int]*models.Transaction),
		nextCatID:    1000,
		nextTxID:     1,
	}
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.clone()
	if err := fn(&fakeTx{store: s}); err != nil {
		s.wallets = snapshot.wallets
		s.categories = snapshot.categories
		s.transactions = snapshot.transactions
		s.nextCatID = snapshot.nextCatID
		s.nextTxID = snapshot.nextTxID
		return err
	}
	return nil
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextCatID = s.nextCatID
	c.nextTxID = s.nextTxID
	for id, w := range s.wallets {
		copied := *w
		c.wallets[id] = &copied
	}
	for id, cat := range s.categories {
		copied := *cat
		c.categories[id] = &copied
	}
	for id, t := range s.transactions {
		copied := *t
		c.transactions[id] = &copied
	}
	return c
}

func (s *fakeStore) addWallet(id, ownerID int, name, balance string) {
	s.wallets[id] = &models.Wallet{
		ID:      id,
		UserID:  ownerID,
		Name:    name,
		Balance: decimal.RequireFromString(balance),
	}
}

func (s *fakeStore) addCategory(id int, ownerID *int, name, catType string) {
	s.categories[id] = &models.Category{
		ID:       id,
		UserID:   ownerID,
		Name:     name,
		Type:     catType,
		IsGlobal: ownerID == nil,
	}
}

func (s *fakeStore) balance(walletID int) decimal.Decimal {
	return s.wallets[walletID].Balance
}

// signedTotal recomputes a wallet balance from extant transactions, which
// must always match the materialized balance.
func (s *fakeStore) signedTotal(walletID int, opening string) decimal.Decimal {
	total := decimal.RequireFromString(opening)
	for _, t := range s.transactions {
		if t.WalletID == walletID {
			total = total.Add(t.SignedAmount())
		}
	}
	return total
}

func (s *fakeStore) transferCategories() []*models.Category {
	var found []*models.Category
	for _, c := range s.categories {
		if c.Name == models.TransferCategoryName {
			found = append(found, c)
		}
	}
	return found
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) WalletForUpdate(ctx context.Context, walletID, ownerID int) (*models.Wallet, error) {
	w, ok := t.store.wallets[walletID]
	if !ok || w.UserID != ownerID {
		return nil, sql.ErrNoRows
	}
	copied := *w
	return &copied, nil
}

func (t *fakeTx) ApplyWalletDelta(ctx context.Context, walletID int, amount decimal.Decimal, income bool) error {
	w, ok := t.store.wallets[walletID]
	if !ok {
		return sql.ErrNoRows
	}
	if income {
		w.Balance = w.Balance.Add(amount)
	} else {
		w.Balance = w.Balance.Sub(amount)
	}
	return nil
}

func (t *fakeTx) CategoryByID(ctx context.Context, categoryID int) (*models.Category, error) {
	c, ok := t.store.categories[categoryID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (t *fakeTx) FindTransferCategory(ctx context.Context, ownerID int) (*models.Category, error) {
	var global *models.Category
	for _, c := range t.store.categories {
		if c.Name != models.TransferCategoryName || c.Type != models.TypeExpense {
			continue
		}
		if c.UserID != nil && *c.UserID == ownerID {
			copied := *c
			return &copied, nil
		}
		if c.UserID == nil {
			global = c
		}
	}
	if global != nil {
		copied := *global
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (t *fakeTx) EnsureTransferCategory(ctx context.Context) (*models.Category, error) {
	for _, c := range t.store.categories {
		if c.UserID == nil && c.Name == models.TransferCategoryName && c.Type == models.TypeExpense {
			copied := *c
			return &copied, nil
		}
	}
	t.store.nextCatID++
	c := &models.Category{
		ID:       t.store.nextCatID,
		Name:     models.TransferCategoryName,
		Type:     models.TypeExpense,
		Icon:     models.TransferCategoryIcon,
		IsGlobal: true,
	}
	t.store.categories[c.ID] = c
	copied := *c
	return &copied, nil
}

func (t *fakeTx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	tr.ID = t.store.nextTxID
	t.store.nextTxID++
	copied := *tr
	t.store.transactions[tr.ID] = &copied
	return nil
}

func (t *fakeTx) TransactionForUpdate(ctx context.Context, transactionID, ownerID int) (*models.Transaction, error) {
	tr, ok := t.store.transactions[transactionID]
	if !ok || tr.UserID != ownerID {
		return nil, sql.ErrNoRows
	}
	copied := *tr
	return &copied, nil
}

func (t *fakeTx) TransferLegsForUpdate(ctx context.Context, groupID string, ownerID int) ([]models.Transaction, error) {
	var legs []models.Transaction
	for _, tr := range t.store.transactions {
		if tr.TransferGroupID == groupID && tr.UserID == ownerID {
			legs = append(legs, *tr)
		}
	}
	return legs, nil
}

func (t *fakeTx) DeleteTransaction(ctx context.Context, transactionID, ownerID int) (bool, error) {
	tr, ok := t.store.transactions[transactionID]
	if !ok || tr.UserID != ownerID {
		return false, nil
	}
	delete(t.store.transactions, transactionID)
	return true, nil
}

func (t *fakeTx) DeleteTransferLegs(ctx context.Context, groupID string, ownerID int) (int64, error) {
	var deleted int64
	for id, tr := range t.store.transactions {
		if tr.TransferGroupID == groupID && tr.UserID == ownerID {
			delete(t.store.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}

func newTestLedger(store *fakeStore) *Ledger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewLedger(store, log)
}

const (
	ownerID      = 7
	expenseCatID = 1
	incomeCatID  = 2
)

func seededStore() *fakeStore {
	store := newFakeStore()
	store.addWallet(1, ownerID, "Dompet Utama", "1000000.00")
	store.addWallet(2, ownerID, "Tabungan", "200000.00")
	store.addCategory(expenseCatID, nil, "Makanan", models.TypeExpense)
	store.addCategory(incomeCatID, nil, "Gaji", models.TypeIncome)
	return store
}

func TestCreateTransaction_ExpenseAppliesDelta(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	created, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:    1,
		CategoryID:  expenseCatID,
		Amount:      decimal.RequireFromString("50000.00"),
		Type:        models.TypeExpense,
		Description: "nasi goreng",
	})
	require.NoError(t, err)

	assert.Equal(t, "950000", store.balance(1).String())
	assert.Equal(t, "nasi goreng", created.Description)
	assert.Equal(t, models.TypeExpense, created.Type)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.TransactionDate)
}

func TestCreateTransaction_IncomeAppliesDelta(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   2,
		CategoryID: incomeCatID,
		Amount:     decimal.RequireFromString("150000.00"),
		Type:       models.TypeIncome,
	})
	require.NoError(t, err)

	assert.Equal(t, "350000", store.balance(2).String())
}

func TestCreateTransaction_CategoryTypeMismatch(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   1,
		CategoryID: incomeCatID,
		Amount:     decimal.RequireFromString("100.00"),
		Type:       models.TypeExpense,
	})

	assert.ErrorIs(t, err, ErrCategoryTypeMismatch)
	assert.Equal(t, "1000000", store.balance(1).String())
	assert.Empty(t, store.transactions)
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   2,
		CategoryID: expenseCatID,
		Amount:     decimal.RequireFromString("200000.01"),
		Type:       models.TypeExpense,
	})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, "200000", store.balance(2).String())
	assert.Empty(t, store.transactions)
}

func TestCreateTransaction_WalletScopedToOwner(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), 99, CreateTransactionInput{
		WalletID:   1,
		CategoryID: expenseCatID,
		Amount:     decimal.RequireFromString("100.00"),
		Type:       models.TypeExpense,
	})

	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestCreateTransaction_CategoryNotAccessible(t *testing.T) {
	store := seededStore()
	otherUser := 99
	store.addCategory(3, &otherUser, "Private", models.TypeExpense)
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   1,
		CategoryID: 3,
		Amount:     decimal.RequireFromString("100.00"),
		Type:       models.TypeExpense,
	})

	assert.ErrorIs(t, err, ErrCategoryNotAccessible)
	assert.Equal(t, "1000000", store.balance(1).String())
}

func TestCreateTransaction_CategoryNotFound(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   1,
		CategoryID: 404,
		Amount:     decimal.RequireFromString("100.00"),
		Type:       models.TypeExpense,
	})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateTransaction_RejectsBadAmounts(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	for _, amount := range []string{"0", "-5", "10.001"} {
		_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
			WalletID:   1,
			CategoryID: expenseCatID,
			Amount:     decimal.RequireFromString(amount),
			Type:       models.TypeExpense,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %s", amount)
	}
	assert.Equal(t, "1000000", store.balance(1).String())
}

func TestCreateTransaction_RejectsBadDescriptions(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	for _, description := range []string{"<script>alert(1)</script>", strings.Repeat("x", 501)} {
		_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
			WalletID:    1,
			CategoryID:  expenseCatID,
			Amount:      decimal.RequireFromString("100.00"),
			Type:        models.TypeExpense,
			Description: description,
		})
		assert.ErrorIs(t, err, ErrInvalidDescription)
	}
}

func TestCreateTransaction_RejectsBadDate(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:        1,
		CategoryID:      expenseCatID,
		Amount:          decimal.RequireFromString("100.00"),
		Type:            models.TypeExpense,
		TransactionDate: "15-01-2025",
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	created, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   1,
		CategoryID: expenseCatID,
		Amount:     decimal.RequireFromString("75000.00"),
		Type:       models.TypeExpense,
	})
	require.NoError(t, err)
	require.Equal(t, "925000", store.balance(1).String())

	deleted, err := ledger.DeleteTransaction(context.Background(), created.ID, ownerID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "1000000", store.balance(1).String())
	assert.Empty(t, store.transactions)
}

func TestDeleteTransaction_RoundTripRestoresBalance(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)
	ctx := context.Background()

	in := CreateTransactionInput{
		WalletID:   2,
		CategoryID: incomeCatID,
		Amount:     decimal.RequireFromString("33000.00"),
		Type:       models.TypeIncome,
	}

	first, err := ledger.CreateTransaction(ctx, ownerID, in)
	require.NoError(t, err)
	afterCreate := store.balance(2)

	_, err = ledger.DeleteTransaction(ctx, first.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "200000", store.balance(2).String())

	_, err = ledger.CreateTransaction(ctx, ownerID, in)
	require.NoError(t, err)
	assert.True(t, afterCreate.Equal(store.balance(2)))
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	deleted, err := ledger.DeleteTransaction(context.Background(), 404, ownerID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteTransaction_OtherOwnersTransaction(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	created, err := ledger.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
		WalletID:   1,
		CategoryID: expenseCatID,
		Amount:     decimal.RequireFromString("100.00"),
		Type:       models.TypeExpense,
	})
	require.NoError(t, err)

	deleted, err := ledger.DeleteTransaction(context.Background(), created.ID, 99)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, store.transactions, 1)
}

func TestBalanceMatchesExtantTransactions(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 5; i++ {
		created, err := ledger.CreateTransaction(ctx, ownerID, CreateTransactionInput{
			WalletID:   1,
			CategoryID: expenseCatID,
			Amount:     decimal.RequireFromString(fmt.Sprintf("%d.50", (i+1)*1000)),
			Type:       models.TypeExpense,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	for i := 0; i < 3; i++ {
		_, err := ledger.CreateTransaction(ctx, ownerID, CreateTransactionInput{
			WalletID:   1,
			CategoryID: incomeCatID,
			Amount:     decimal.RequireFromString("2500.25"),
			Type:       models.TypeIncome,
		})
		require.NoError(t, err)
	}

	// Delete two of the expenses.
	for _, id := range ids[:2] {
		deleted, err := ledger.DeleteTransaction(ctx, id, ownerID)
		require.NoError(t, err)
		require.True(t, deleted)
	}

	assert.True(t, store.signedTotal(1, "1000000.00").Equal(store.balance(1)),
		"materialized balance %s diverged from transaction log total %s",
		store.balance(1), store.signedTotal(1, "1000000.00"))
}

func TestTransferFunds_MovesAmountBetweenWallets(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	result, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 1,
		DestWalletID:   2,
		Amount:         decimal.RequireFromString("300000.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "700000", store.balance(1).String())
	assert.Equal(t, "500000", store.balance(2).String())
	assert.Equal(t, "300000", result.Amount.String())
	assert.Equal(t, "Dompet Utama", result.SourceWallet)
	assert.Equal(t, "Tabungan", result.DestWallet)

	require.NotNil(t, result.OutTransaction)
	require.NotNil(t, result.InTransaction)
	assert.Equal(t, models.TypeExpense, result.OutTransaction.Type)
	assert.Equal(t, 1, result.OutTransaction.WalletID)
	assert.Equal(t, models.TypeIncome, result.InTransaction.Type)
	assert.Equal(t, 2, result.InTransaction.WalletID)
	assert.Equal(t, models.TransferCategoryName, result.OutTransaction.CategoryName)
	assert.Equal(t, models.TransferCategoryName, result.InTransaction.CategoryName)
	assert.True(t, strings.HasPrefix(result.OutTransaction.Description, "[OUT] "))
	assert.True(t, strings.HasPrefix(result.InTransaction.Description, "[IN] "))
	assert.Len(t, store.transactions, 2)
}

func TestTransferFunds_PreservesTotalFunds(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)
	before := store.balance(1).Add(store.balance(2))

	_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 2,
		DestWalletID:   1,
		Amount:         decimal.RequireFromString("123.45"),
	})
	require.NoError(t, err)

	assert.True(t, before.Equal(store.balance(1).Add(store.balance(2))))
}

func TestTransferFunds_SameWallet(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 1,
		DestWalletID:   1,
		Amount:         decimal.RequireFromString("100.00"),
	})

	assert.ErrorIs(t, err, ErrSameWalletTransfer)
	assert.Equal(t, "1000000", store.balance(1).String())
	assert.Empty(t, store.transactions)
}

func TestTransferFunds_NonPositiveAmount(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	for _, amount := range []string{"0", "-100"} {
		_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
			SourceWalletID: 1,
			DestWalletID:   2,
			Amount:         decimal.RequireFromString(amount),
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Empty(t, store.transactions)
}

func TestTransferFunds_InsufficientFunds(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 2,
		DestWalletID:   1,
		Amount:         decimal.RequireFromString("200000.01"),
	})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, "200000", store.balance(2).String())
	assert.Equal(t, "1000000", store.balance(1).String())
	assert.Empty(t, store.transactions)
}

func TestTransferFunds_SourceNotFound(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 404,
		DestWalletID:   2,
		Amount:         decimal.RequireFromString("100.00"),
	})

	assert.ErrorIs(t, err, ErrSourceWalletNotFound)
}

func TestTransferFunds_DestNotFound(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 1,
		DestWalletID:   404,
		Amount:         decimal.RequireFromString("100.00"),
	})

	assert.ErrorIs(t, err, ErrDestWalletNotFound)
}

func TestTransferFunds_LegsShareGroupID(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	result, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
		SourceWalletID: 1,
		DestWalletID:   2,
		Amount:         decimal.RequireFromString("500.00"),
		Description:    "monthly savings",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.OutTransaction.TransferGroupID)
	assert.Equal(t, result.OutTransaction.TransferGroupID, result.InTransaction.TransferGroupID)
	assert.Equal(t, "[OUT] monthly savings", result.OutTransaction.Description)
	assert.Equal(t, "[IN] monthly savings", result.InTransaction.Description)
}

func TestTransferFunds_SingleTransferCategory(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ledger.TransferFunds(ctx, ownerID, TransferInput{
			SourceWalletID: 1,
			DestWalletID:   2,
			Amount:         decimal.RequireFromString("1000.00"),
		})
		require.NoError(t, err)
	}

	require.Len(t, store.transferCategories(), 1)
	cat := store.transferCategories()[0]
	assert.True(t, cat.IsGlobal)
	assert.Equal(t, models.TypeExpense, cat.Type)
	assert.Equal(t, models.TransferCategoryIcon, cat.Icon)
}

func TestTransferFunds_ConcurrentEnsureIsIdempotent(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.TransferFunds(context.Background(), ownerID, TransferInput{
				SourceWalletID: 1,
				DestWalletID:   2,
				Amount:         decimal.RequireFromString("100.00"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, store.transferCategories(), 1)
	assert.Equal(t, "999200", store.balance(1).String())
	assert.Equal(t, "200800", store.balance(2).String())
}

func TestDeleteTransaction_TransferLegRemovesPair(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)
	ctx := context.Background()

	result, err := ledger.TransferFunds(ctx, ownerID, TransferInput{
		SourceWalletID: 1,
		DestWalletID:   2,
		Amount:         decimal.RequireFromString("40000.00"),
	})
	require.NoError(t, err)
	require.Equal(t, "960000", store.balance(1).String())
	require.Equal(t, "240000", store.balance(2).String())

	deleted, err := ledger.DeleteTransaction(ctx, result.OutTransaction.ID, ownerID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, "1000000", store.balance(1).String())
	assert.Equal(t, "200000", store.balance(2).String())
	assert.Empty(t, store.transactions)
}

func TestDeleteTransaction_TransferInLegAlsoRemovesPair(t *testing.T) {
	store := seededStore()
	ledger := newTestLedger(store)
	ctx := context.Background()

	result, err := ledger.TransferFunds(ctx, ownerID, TransferInput{
		SourceWalletID: 1,
		DestWalletID:   2,
		Amount:         decimal.RequireFromString("40000.00"),
	})
	require.NoError(t, err)

	deleted, err := ledger.DeleteTransaction(ctx, result.InTransaction.ID, ownerID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "1000000", store.balance(1).String())
	assert.Equal(t, "200000", store.balance(2).String())
	assert.Empty(t, store.transactions)
}
