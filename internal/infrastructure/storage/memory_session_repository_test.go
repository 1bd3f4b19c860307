package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"puzzle-bot/internal/domain/entity"
)

func TestMemorySessionRepository_GetCreatesOnce(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	first, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, entity.CameraIdle, first.Camera)

	second, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestMemorySessionRepository_Save(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := entity.NewSession(20)
	session.SetImage(&entity.CapturedImage{MimeType: "image/png"})
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, 20)
	require.NoError(t, err)
	require.True(t, got.AnalyzeEnabled)
	require.Same(t, session, got)
}
