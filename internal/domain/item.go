package domain

import (
	"fmt"
	"strings"
)

type ItemID string

// Item is one entry of the pool. Image is an opaque reference: a path, a URL
// or a glyph that drivers render verbatim.
type Item struct {
	ID     ItemID
	Answer string
	Image  string
}

func (i Item) Validate() error {
	if strings.TrimSpace(string(i.ID)) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if NormalizeAnswer(i.Answer) == "" {
		return fmt.Errorf("%w: item %s: answer is required", ErrInvalidItem, i.ID)
	}

	return nil
}

// ValidatePool checks every item and rejects duplicate ids. An empty pool is
// valid here; starting a session on it is not.
func ValidatePool(items []Item) error {
	seen := make(map[ItemID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return nil
}
