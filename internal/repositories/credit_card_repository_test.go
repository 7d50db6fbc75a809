package repositories

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/schema"

	"github.com/gofrs/flock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (CreditCardRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.csv")
	return NewCreditCardRepository(path, StoreOptions{LockTimeout: 200 * time.Millisecond, LockRetry: 10 * time.Millisecond}), path
}

func writeCSV(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func sampleCard() models.CreditCard {
	c := models.CreditCard{
		ID:                "c-1",
		Bank:              "Chase",
		CardName:          "Sapphire Preferred",
		AnnualFee:         decimal.RequireFromString("95"),
		ImageFilename:     "Chase_Sapphire Preferred.png",
		SortOrder:         1,
		Notes:             "travel, dining",
		Tags:              []string{"travel", "dining"},
		Last4:             "0123",
		DateApplied:       models.DatePtr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		DateApproved:      models.DatePtr(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)),
		BonusOffer:        "60k points",
		MinSpend:          decimal.RequireFromString("4000"),
		MinSpendDeadline:  models.DatePtr(time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC)),
		BonusStatus:       models.BonusInProgress,
		CurrentSpend:      decimal.RequireFromString("1250.50"),
		FeeWaivedCount:    1,
		LastFeeActionYear: 2024,
		LastFeeAction:     models.FeeActionWaived,
	}
	c.SetExpiry(models.Expiry{Month: time.March, Year: 28})
	return c
}

func TestCreditCardRepository_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set.Cards)
	assert.Empty(t, set.Warnings)
}

func TestCreditCardRepository_LoadEmptyFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set.Cards)
}

func TestCreditCardRepository_RoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()
	card := sampleCard()

	require.NoError(t, store.Save(ctx, &RecordSet{Cards: []models.CreditCard{card}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(raw), "\n", 2)[0]
	assert.Equal(t, strings.Join(schema.Columns(), ","), strings.ReplaceAll(header, "\"", ""))

	set, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, set.Cards, 1)
	assert.Empty(t, set.Warnings)

	got := set.Cards[0]
	assert.Equal(t, card.ID, got.ID)
	assert.Equal(t, card.Bank, got.Bank)
	assert.Equal(t, card.CardName, got.CardName)
	assertMoney(t, "95", got.AnnualFee)
	assert.Equal(t, card.Expiry, got.Expiry)
	assert.Equal(t, time.March, got.FeeDueMonth)
	assert.Equal(t, card.Notes, got.Notes)
	assert.Equal(t, []string{"dining", "travel"}, got.Tags)
	assert.Equal(t, "0123", got.Last4)
	assert.Equal(t, *card.DateApplied, *got.DateApplied)
	assert.Equal(t, *card.MinSpendDeadline, *got.MinSpendDeadline)
	assert.Nil(t, got.CancellationDate)
	assertMoney(t, "4000", got.MinSpend)
	assertMoney(t, "1250.5", got.CurrentSpend)
	assert.Equal(t, models.BonusInProgress, got.BonusStatus)
	assert.Equal(t, 1, got.FeeWaivedCount)
	assert.Equal(t, 2024, got.LastFeeActionYear)
	assert.Equal(t, models.FeeActionWaived, got.LastFeeAction)
}

func TestCreditCardRepository_SaveAssignsMissingIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	card := sampleCard()
	card.ID = ""

	set := &RecordSet{Cards: []models.CreditCard{card}}
	require.NoError(t, store.Save(ctx, set))
	assert.NotEmpty(t, set.Cards[0].ID)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, set.Cards[0].ID, loaded.Cards[0].ID)
}

func TestCreditCardRepository_MalformedCells(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"ID,Bank,Card Name,Annual Fee,Card Expiry (MM/YY),Month of Annual Fee,Sort Order,Bonus Status,Current Spend,Date Applied",
		"a,Amex,Gold,abc,13/40,Smarch,x,Bogus,-5,not-a-date",
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Cards, 1)

	c := set.Cards[0]
	assertMoney(t, "0", c.AnnualFee)
	assert.True(t, c.Expiry.IsZero())
	assert.Equal(t, time.Month(0), c.FeeDueMonth)
	assert.Equal(t, schema.SortOrderFallback, c.SortOrder)
	assert.Equal(t, models.BonusNotStarted, c.BonusStatus)
	assertMoney(t, "0", c.CurrentSpend)
	assert.Nil(t, c.DateApplied)

	columns := make([]string, 0, len(set.Warnings))
	for _, w := range set.Warnings {
		assert.Equal(t, 1, w.Row)
		columns = append(columns, w.Column)
	}
	assert.ElementsMatch(t, []string{
		schema.AnnualFee, schema.Expiry, schema.FeeDueMonth, schema.SortOrder,
		schema.BonusStatus, schema.CurrentSpend, schema.DateApplied,
	}, columns)
}

func TestCreditCardRepository_NullTokensAndMoneyFormats(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"ID,Bank,Card Name,Annual Fee,Min Spend,Date Applied,Cancellation Date,Tags",
		`a,Citi,Premier,"$1,095.00",nan,NaT,None,"travel, ,dining,travel"`,
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set.Warnings)

	c := set.Cards[0]
	assertMoney(t, "1095", c.AnnualFee)
	assertMoney(t, "0", c.MinSpend)
	assert.Nil(t, c.DateApplied)
	assert.True(t, c.Active())
	assert.Equal(t, []string{"dining", "travel"}, c.Tags)
}

func TestCreditCardRepository_MigratesMissingColumns(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"Bank,Card Name,Annual Fee,Expiry,FeeWaivedCount,FeePaidCount,LastFeeActionYear",
		"Chase,Freedom,0,07/27,0,0,0",
		"Amex,Platinum,695,11/26,2,1,2023",
		"Citi,Prestige,495,2026-02-28,0,3,2024",
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Cards, 3)

	for i, c := range set.Cards {
		assert.Equal(t, i+1, c.SortOrder, "missing sort order column numbers rows")
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, models.DefaultImage, c.ImageFilename)
		assert.NotNil(t, c.Tags)
	}

	assert.Equal(t, models.Expiry{Month: time.July, Year: 27}, set.Cards[0].Expiry)
	assert.Equal(t, time.July, set.Cards[0].FeeDueMonth)
	assert.Equal(t, models.FeeActionNone, set.Cards[0].LastFeeAction)

	assert.Equal(t, time.November, set.Cards[1].FeeDueMonth)
	assert.Equal(t, models.FeeActionWaived, set.Cards[1].LastFeeAction)

	assert.Equal(t, models.Expiry{Month: time.February, Year: 26}, set.Cards[2].Expiry)
	assert.Equal(t, models.FeeActionPaid, set.Cards[2].LastFeeAction)

	again, err := store.Load(context.Background())
	require.NoError(t, err)
	for i := range set.Cards {
		assert.Equal(t, set.Cards[i].ID, again.Cards[i].ID, "legacy ids are stable")
	}
}

func TestCreditCardRepository_StoredFeeActionWins(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"ID,Bank,Card Name,FeeWaivedCount,FeePaidCount,LastFeeActionYear,LastFeeAction",
		"a,Amex,Gold,3,0,2024,Paid",
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.FeeActionPaid, set.Cards[0].LastFeeAction)
}

func TestCreditCardRepository_RepairsLast4(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"ID,Bank,Card Name,Last 4 Digits",
		"a,Amex,Gold,123.0",
		"b,Amex,Green,7",
		"c,Amex,Blue,12345",
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0123", set.Cards[0].Last4)
	assert.Equal(t, "0007", set.Cards[1].Last4)
	assert.Equal(t, "", set.Cards[2].Last4)
	require.Len(t, set.Warnings, 1)
	assert.Equal(t, schema.Last4, set.Warnings[0].Column)
}

func TestCreditCardRepository_DuplicateIDs(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"ID,Bank,Card Name",
		"same,Amex,Gold",
		"same,Amex,Green",
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "same", set.Cards[0].ID)
	assert.NotEqual(t, "same", set.Cards[1].ID)
}

func TestCreditCardRepository_BOMAndBlankRows(t *testing.T) {
	store, path := newTestStore(t)
	writeCSV(t, path,
		"\ufeffID,Bank,Card Name",
		"a,Amex,Gold",
		",,",
		"b,Chase,Ink",
	)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Cards, 2)
	assert.Equal(t, "a", set.Cards[0].ID)
	assert.Equal(t, "b", set.Cards[1].ID)
}

func TestCreditCardRepository_LockTimeout(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &RecordSet{Cards: []models.CreditCard{sampleCard()}}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	holder := flock.New(path + ".lock")
	require.NoError(t, holder.Lock())
	defer holder.Unlock()

	card := sampleCard()
	card.Bank = "Changed"
	err = store.Save(ctx, &RecordSet{Cards: []models.CreditCard{card}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrLockTimeout)
	assert.True(t, domainerrors.IsIO(err))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed save leaves the file untouched")

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrLockTimeout)
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	return matches
}

func TestCreditCardRepository_SaveRenameFailure(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	// A non-empty directory at the data path makes the final rename fail
	// after the temp file has been written.
	require.NoError(t, os.Mkdir(path, 0o755))
	marker := filepath.Join(path, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("untouched"), 0o644))

	err := store.Save(ctx, &RecordSet{Cards: []models.CreditCard{sampleCard()}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrIO)
	assert.NotErrorIs(t, err, domainerrors.ErrLockTimeout)

	assert.Empty(t, tempFiles(t, filepath.Dir(path)), "temp file is removed after a failed save")
	got, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(got))
}

func TestCreditCardRepository_SaveReadOnlyDirKeepsPreviousFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	store, path := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &RecordSet{Cards: []models.CreditCard{sampleCard()}}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	card := sampleCard()
	card.Bank = "Changed"
	err = store.Save(ctx, &RecordSet{Cards: []models.CreditCard{card}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrIO)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed save leaves the file untouched")
	assert.Empty(t, tempFiles(t, dir))
}

func TestCreditCardRepository_ConcurrentSavesLeaveCompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	opts := StoreOptions{LockTimeout: 5 * time.Second, LockRetry: 5 * time.Millisecond}
	a := NewCreditCardRepository(path, opts)
	b := NewCreditCardRepository(path, opts)
	ctx := context.Background()

	setOf := func(bank string, n int) *RecordSet {
		set := &RecordSet{}
		for i := 0; i < n; i++ {
			c := sampleCard()
			c.ID = bank + "-" + string(rune('a'+i))
			c.Bank = bank
			c.SortOrder = i + 1
			set.Cards = append(set.Cards, c)
		}
		return set
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.Save(ctx, setOf("Amex", 5)))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, b.Save(ctx, setOf("Chase", 3)))
		}()
	}
	wg.Wait()

	set, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, set.Warnings)
	switch set.Cards[0].Bank {
	case "Amex":
		assert.Len(t, set.Cards, 5)
	case "Chase":
		assert.Len(t, set.Cards, 3)
	default:
		t.Fatalf("unexpected bank %q", set.Cards[0].Bank)
	}
	for _, c := range set.Cards {
		assert.Equal(t, set.Cards[0].Bank, c.Bank, "file holds exactly one writer's data")
	}
}

func TestCreditCardRepository_Update(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &RecordSet{Cards: []models.CreditCard{sampleCard()}}))

	err := store.Update(ctx, func(set *RecordSet) error {
		c, ok := set.Find("c-1")
		require.True(t, ok)
		c.Notes = "updated"
		return nil
	})
	require.NoError(t, err)

	set, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "updated", set.Cards[0].Notes)

	err = store.Update(ctx, func(set *RecordSet) error {
		set.Cards[0].Notes = "discarded"
		return domainerrors.NotFound("x")
	})
	assert.True(t, domainerrors.IsNotFound(err))

	set, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "updated", set.Cards[0].Notes)
}

func TestCreditCardRepository_Export(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	var empty bytes.Buffer
	require.NoError(t, store.Export(ctx, &empty))
	assert.Equal(t, strings.Join(schema.Columns(), ","), strings.TrimSpace(strings.ReplaceAll(empty.String(), "\"", "")))

	require.NoError(t, store.Save(ctx, &RecordSet{Cards: []models.CreditCard{sampleCard()}}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, store.Export(ctx, &out))
	assert.Equal(t, raw, out.Bytes())
}

func TestRecordSet_Helpers(t *testing.T) {
	a, b, c := sampleCard(), sampleCard(), sampleCard()
	a.ID, b.ID, c.ID = "a", "b", "c"
	a.SortOrder, b.SortOrder, c.SortOrder = 3, 7, 1
	b.CancellationDate = models.DatePtr(time.Now())
	set := &RecordSet{Cards: []models.CreditCard{a, b, c}}

	assert.Equal(t, 7, set.MaxSortOrder())
	assert.Len(t, set.Active(), 2)

	found, ok := set.Find("c")
	require.True(t, ok)
	found.Notes = "via pointer"
	assert.Equal(t, "via pointer", set.Cards[2].Notes)

	assert.True(t, set.Remove("b"))
	assert.False(t, set.Remove("b"))
	assert.Len(t, set.Cards, 2)
	assert.Equal(t, 0, (&RecordSet{}).MaxSortOrder())
}
