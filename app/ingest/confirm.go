package ingest

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lukashev/linkstash/app/database"
)

// Edits carries the user's corrections applied on confirmation. Empty fields
// keep the AI-generated values.
type Edits struct {
	Description string
	Category    string
	Tags        []string
	ReadingTime int
	Publish     bool
}

// Confirmer finalizes pending links with optional user edits.
type Confirmer struct {
	linkRepo   database.LinkRepository
	categories CategoryProvider
}

func NewConfirmer(linkRepo database.LinkRepository, categoryProvider CategoryProvider) *Confirmer {
	return &Confirmer{linkRepo: linkRepo, categories: categoryProvider}
}

// Confirm applies edits to a pending link and optionally publishes it.
// Returns ErrNotFound when no pending link has the given id and
// ErrInvalidCategory when the edited category is not in the active list.
func (c *Confirmer) Confirm(id string, edits Edits) (*database.Link, error) {
	link, err := c.linkRepo.GetPendingLink(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending link: %w", err)
	}
	if link == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if edits.Category != "" && !c.categories.Contains(edits.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, edits.Category)
	}

	description := edits.Description
	if description == "" {
		description = link.FinalDescription()
	}
	category := edits.Category
	if category == "" {
		category = link.FinalCategory()
	}
	tags := edits.Tags
	if len(tags) == 0 {
		tags = link.FinalTags()
	}
	readingTime := edits.ReadingTime
	if readingTime <= 0 {
		readingTime = link.FinalReadingTime()
	}

	if err := c.linkRepo.UpdateConfirmation(id, description, category, tags, readingTime, edits.Publish); err != nil {
		// The row can disappear between the pending lookup and the update
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	updated, err := c.linkRepo.GetLink(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload link: %w", err)
	}

	return updated, nil
}
