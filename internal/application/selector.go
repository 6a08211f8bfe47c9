package application

import (
	"errors"
	"math/rand/v2"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
)

var errNilRandom = errors.New("selector random source is nil")

var _ RoundSelector = (*Selector)(nil)

// Selector picks the next item uniformly at random among the items that have
// not been used yet.
type Selector struct {
	random ports.Random
}

func NewSelector(random ports.Random) *Selector {
	if random == nil {
		panic(errNilRandom)
	}

	return &Selector{random: random}
}

func (s *Selector) SelectNext(pool []domain.Item, used map[domain.ItemID]struct{}) (domain.Item, error) {
	available := make([]domain.Item, 0, len(pool))
	for _, item := range pool {
		if _, ok := used[item.ID]; ok {
			continue
		}
		available = append(available, item)
	}

	if len(available) == 0 {
		return domain.Item{}, domain.ErrSelectorExhausted
	}

	return available[s.random.IntN(len(available))], nil
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}
