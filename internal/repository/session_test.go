package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastrow/blastfive-backend/internal/apperror"
	"github.com/blastrow/blastfive-backend/internal/entity"
	"github.com/blastrow/blastfive-backend/testing/suite"
)

func TestSessionRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a snapshot with an ID and some progress
	snapshot := &entity.Snapshot{
		ID:         "abc123",
		Board:      entity.NewBoard().Ints(),
		Seat1Score: 5,
		TurnCount:  9,
		NextColor:  int(entity.CellWhite),
		Status:     entity.StatusAwaitingMove,
	}

	// When: Save is called
	err := sessionRepo.Save(ctx, snapshot)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a saved snapshot with a verdict
		board := entity.NewBoard()
		board.Set(7, 7, entity.CellBlack)
		snapshot := &entity.Snapshot{
			ID:         "abc123",
			Board:      board.Ints(),
			Seat1Score: 200,
			Seat2Score: 40,
			TurnCount:  61,
			NextColor:  int(entity.CellWhite),
			Status:     entity.StatusTerminal,
			Verdict: &entity.Verdict{
				Winner: entity.Seat1,
				Reason: entity.ReasonDominantWin,
			},
		}

		err := sessionRepo.Save(ctx, snapshot)
		require.NoError(t, err)

		// When: GetByID is called with the existing ID
		retrieved, err := sessionRepo.GetByID(ctx, snapshot.ID)

		// Then: the retrieved snapshot should match the saved one
		require.NoError(t, err)
		require.Equal(t, snapshot.ID, retrieved.ID)
		require.Equal(t, snapshot.Seat1Score, retrieved.Seat1Score)
		require.Equal(t, snapshot.TurnCount, retrieved.TurnCount)
		require.Equal(t, snapshot.Status, retrieved.Status)
		require.NotNil(t, retrieved.Verdict)
		assert.Equal(t, entity.Seat1, retrieved.Verdict.Winner)
		assert.Equal(t, 1, retrieved.Board[7][7])
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a saved snapshot
	snapshot := &entity.Snapshot{
		ID:     "abc123",
		Board:  entity.NewBoard().Ints(),
		Status: entity.StatusTerminal,
	}

	err := sessionRepo.Save(ctx, snapshot)
	require.NoError(t, err)

	// When: DeleteByID is called with the existing ID
	err = sessionRepo.DeleteByID(ctx, snapshot.ID)

	// Then: the snapshot is gone
	require.NoError(t, err)

	_, err = sessionRepo.GetByID(ctx, snapshot.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
