package repository

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestChatsLocalStorage_AddRemove(t *testing.T) {
	s := NewChatsLocalStorage()

	chatID := int64(125)
	userID := "125"

	s.Add(chatID, userID)
	require.Equal(t, map[int64]string{chatID: userID}, s.All())

	s.Add(chatID, userID)
	require.Equal(t, 1, len(s.All()))

	s.Remove(chatID)
	require.Empty(t, s.All())
}

func TestChatsLocalStorage_AllReturnsCopy(t *testing.T) {
	s := NewChatsLocalStorage()
	s.Add(1, "1")

	all := s.All()
	delete(all, 1)
	require.Equal(t, 1, len(s.All()))
}
