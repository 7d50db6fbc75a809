/*
Package portfolio implements the actions a user takes on their cards.

Every mutating call loads a fresh snapshot from the card store, validates its
input, applies the field changes for that action and saves the snapshot back.
Validation failures and unknown ids return before anything is written.

Usage:

	svc := portfolio.NewService(cards, tags, catalog, portfolio.Config{}, &portfolio.NoopMetricsCollector{})

	card, err := svc.Add(ctx, models.CardInput{Bank: "Amex", CardName: "Gold", Expiry: "03/28"})
	card, err = svc.RecordFeeAction(ctx, card.ID, models.FeeActionWaived)
	card, err = svc.UpdateSpend(ctx, card.ID, decimal.NewFromInt(500))

Concurrency:

By default the store lock only covers each physical read and write, so two
processes acting at the same moment can overwrite each other's change (the
later save wins). Config.Transactional routes every action through the store's
Update instead, holding the lock across load, change and save.

Error Handling:

Errors come from cardfolio/internal/errors:
  - ErrValidation: bad input; Fields names each offending field
  - ErrNotFound: the card id is not in the current snapshot
  - ErrIO / ErrLockTimeout: the data or tags file could not be read or written
*/
package portfolio
