package alert

import (
	"context"
	"testing"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_PresentAndConfirm(t *testing.T) {
	m := NewModel(nil)
	assert.False(t, m.Presenting())
	assert.False(t, m.Confirm())

	c := auth.NewConfirmation()
	require.NoError(t, m.PresentConfirmation(context.Background(), c))

	id, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, c.ID(), id)

	assert.True(t, m.Confirm())
	assert.True(t, c.Resolved())
	assert.False(t, m.Presenting())
	assert.False(t, m.Confirm())
}

func TestModel_RejectsSecondAlert(t *testing.T) {
	m := NewModel(nil)
	ctx := context.Background()

	require.NoError(t, m.PresentConfirmation(ctx, auth.NewConfirmation()))
	err := m.PresentConfirmation(ctx, auth.NewConfirmation())
	assert.ErrorIs(t, err, ErrAlreadyPresenting)
}

func TestModel_DropsAbandonedConfirmation(t *testing.T) {
	m := NewModel(nil)
	ctx := context.Background()

	abandoned := auth.NewConfirmation()
	require.NoError(t, m.PresentConfirmation(ctx, abandoned))
	abandoned.Resolve()

	assert.False(t, m.Presenting())
	require.NoError(t, m.PresentConfirmation(ctx, auth.NewConfirmation()))
	assert.True(t, m.Presenting())
}
