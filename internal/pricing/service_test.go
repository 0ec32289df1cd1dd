package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	snaps map[uint]Snapshot
	calls int
}

var errNoMenu = errors.New("no such menu")

func (s *stubLoader) LoadPricingSnapshot(_ context.Context, menuID uint) (Snapshot, error) {
	s.calls++
	snap, ok := s.snaps[menuID]
	if !ok {
		return Snapshot{}, errNoMenu
	}
	return snap, nil
}

func TestQuote(t *testing.T) {
	loader := &stubLoader{snaps: map[uint]Snapshot{1: latte()}}
	svc := NewService(loader, NewEngine(PolicyClamp), nil)

	q, err := svc.Quote(context.Background(), Request{MenuID: 1, Selection: Selection{sizeGroup: {large}, milkGroup: {oat}}})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, q.ID)
	assert.Equal(t, "COF-LAT", q.SKU)
	assert.True(t, q.Result.Valid)
	assert.Equal(t, 1, loader.calls)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, q.ID.String(), got["id"])
	assert.Equal(t, "Latte", got["menu"])
	assert.Equal(t, "46000.00", got["final_price"])
}

func TestQuoteInvalidSelectionIsNotAnError(t *testing.T) {
	svc := NewService(&stubLoader{snaps: map[uint]Snapshot{1: latte()}}, nil, nil)

	q, err := svc.Quote(context.Background(), Request{MenuID: 1})
	require.NoError(t, err)
	assert.False(t, q.Result.Valid)
	assert.Error(t, q.Result.Err())
}

func TestQuoteErrors(t *testing.T) {
	inactive := latte()
	inactive.Menu.Active = false
	svc := NewService(&stubLoader{snaps: map[uint]Snapshot{1: inactive}}, nil, nil)

	_, err := svc.Quote(context.Background(), Request{MenuID: 1})
	assert.ErrorIs(t, err, ErrMenuUnavailable)

	_, err = svc.Quote(context.Background(), Request{MenuID: 2})
	assert.ErrorIs(t, err, errNoMenu)
}
