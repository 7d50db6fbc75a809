package portfolio

import (
	"context"
	"log"
	"strings"
	"time"

	domainerrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/repositories"
	"cardfolio/internal/schema"
	"cardfolio/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *service) Add(ctx context.Context, input models.CardInput) (card *models.CreditCard, err error) {
	defer s.track("add", time.Now(), &err)

	v := validation.New()
	v.Struct(input)
	checkCardInput(v, input)

	image := strings.TrimSpace(input.ImageFilename)
	if input.CatalogKey != "" {
		entry, ok, err := s.catalog.Lookup(input.CatalogKey)
		if err != nil {
			return nil, domainerrors.IO("scan image directory", err)
		}
		if !ok {
			v.AddError("catalog_key", "no card image matches "+input.CatalogKey)
		} else {
			input.Bank, input.CardName, image = entry.Bank, entry.CardName, entry.Filename
		}
	} else {
		v.Required("bank", input.Bank)
		v.Required("card_name", input.CardName)
	}
	if !v.Valid() {
		return nil, v.Err()
	}
	if image == "" {
		image = models.DefaultImage
	}

	c := models.CreditCard{
		ID:            uuid.NewString(),
		ImageFilename: image,
		BonusStatus:   models.BonusNotStarted,
	}
	applyCardInput(&c, input)
	advanceBonus(&c)

	var saved models.CreditCard
	err = s.apply(ctx, func(set *repositories.RecordSet) error {
		c.SortOrder = set.MaxSortOrder() + 1
		set.Cards = append(set.Cards, c)
		saved = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.registerTags(ctx, saved.Tags)
	log.Printf("Added card %s (%s)", saved.ID, saved.DisplayName())
	return &saved, nil
}

// Edit replaces the user-editable fields. Sort order, fee counters and the
// cancellation dates are left alone.
func (s *service) Edit(ctx context.Context, id string, input models.CardInput) (card *models.CreditCard, err error) {
	defer s.track("edit", time.Now(), &err)

	v := validation.New()
	v.Struct(input)
	checkCardInput(v, input)
	v.Required("bank", input.Bank)
	v.Required("card_name", input.CardName)
	if !v.Valid() {
		return nil, v.Err()
	}

	card, err = s.mutate(ctx, id, func(_ *repositories.RecordSet, c *models.CreditCard) error {
		applyCardInput(c, input)
		if image := strings.TrimSpace(input.ImageFilename); image != "" {
			c.ImageFilename = image
		}
		advanceBonus(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.registerTags(ctx, card.Tags)
	return card, nil
}

func (s *service) Delete(ctx context.Context, id string) (err error) {
	defer s.track("delete", time.Now(), &err)
	err = s.apply(ctx, func(set *repositories.RecordSet) error {
		if !set.Remove(id) {
			return domainerrors.NotFound(id)
		}
		return nil
	})
	if err == nil {
		log.Printf("Deleted card %s", id)
	}
	return err
}

// checkCardInput covers the rules struct tags cannot express.
func checkCardInput(v *validation.Validator, input models.CardInput) {
	for field, amount := range map[string]*decimal.Decimal{
		"annual_fee":    input.AnnualFee,
		"min_spend":     input.MinSpend,
		"current_spend": input.CurrentSpend,
	} {
		if amount != nil {
			v.NonNegative(field, *amount)
		}
	}
	for _, t := range input.Tags {
		v.Check(!strings.Contains(t, ","), "tags", "must not contain commas")
	}
}

// applyCardInput copies validated input onto c and keeps the fee due month in
// step with the expiry.
func applyCardInput(c *models.CreditCard, input models.CardInput) {
	c.Bank = strings.TrimSpace(input.Bank)
	c.CardName = strings.TrimSpace(input.CardName)
	if input.AnnualFee != nil {
		c.AnnualFee = *input.AnnualFee
	}
	if e, err := models.ParseExpiry(input.Expiry); err == nil {
		c.SetExpiry(e)
	}
	c.Last4 = strings.TrimSpace(input.Last4)
	c.Notes = input.Notes
	c.Tags = models.NormalizeTags(input.Tags)

	c.DateApplied = parseInputDate(input.DateApplied)
	c.DateApproved = parseInputDate(input.DateApproved)
	c.DateReceived = parseInputDate(input.DateReceived)
	c.DateActivated = parseInputDate(input.DateActivated)
	c.FirstCharge = parseInputDate(input.FirstCharge)

	c.BonusOffer = input.BonusOffer
	if input.MinSpend != nil {
		c.MinSpend = *input.MinSpend
	}
	c.MinSpendDeadline = parseInputDate(input.MinSpendDeadline)
	if status, ok := models.ParseBonusStatus(input.BonusStatus); ok {
		c.BonusStatus = status
	}
	if input.CurrentSpend != nil {
		c.CurrentSpend = *input.CurrentSpend
	}
}

func parseInputDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(schema.DateLayout, s)
	if err != nil {
		return nil
	}
	return models.DatePtr(t)
}

// registerTags adds a card's tags to the registry. The card is already saved,
// so a failure here is only logged.
func (s *service) registerTags(ctx context.Context, tags []string) {
	if len(tags) == 0 {
		return
	}
	if _, err := s.tags.Add(ctx, tags); err != nil {
		log.Printf("⚠️ Failed to register tags %v: %v", tags, err)
	}
}
