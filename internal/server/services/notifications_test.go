package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	s := NewNotificationService(db, rm)
	ctx := context.Background()

	a, _ := rm.notifications.Create(ctx, &models.Notification{UserID: "u1", Title: "a"})
	b, _ := rm.notifications.Create(ctx, &models.Notification{UserID: "u1", Title: "b"})
	other, _ := rm.notifications.Create(ctx, &models.Notification{UserID: "u2", Title: "c"})

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	n, err := s.MarkRead(ctx, "u1", a.ID)
	require.NoError(t, err)
	assert.True(t, n.Read)

	_, err = s.MarkRead(ctx, "u1", other.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	changed, err := s.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	assert.ErrorIs(t, s.Delete(ctx, "u1", other.ID), common.ErrorNotFound)
	require.NoError(t, s.Delete(ctx, "u2", other.ID))

	list, err = s.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)
}
