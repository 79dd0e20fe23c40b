package game_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rps-arena/internal/game"
)

func TestResolveAllPairs(t *testing.T) {
	cases := []struct {
		a, b game.Move
		want game.Outcome
	}{
		{game.Rock, game.Rock, game.Draw},
		{game.Paper, game.Paper, game.Draw},
		{game.Scissors, game.Scissors, game.Draw},
		{game.Rock, game.Scissors, game.FirstWins},
		{game.Scissors, game.Paper, game.FirstWins},
		{game.Paper, game.Rock, game.FirstWins},
		{game.Scissors, game.Rock, game.SecondWins},
		{game.Paper, game.Scissors, game.SecondWins},
		{game.Rock, game.Paper, game.SecondWins},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, game.Resolve(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestResolveIsSymmetric(t *testing.T) {
	all := []game.Move{game.Rock, game.Paper, game.Scissors}
	for _, a := range all {
		for _, b := range all {
			fwd := game.Resolve(a, b)
			rev := game.Resolve(b, a)
			switch fwd {
			case game.Draw:
				require.Equal(t, game.Draw, rev)
			case game.FirstWins:
				require.Equal(t, game.SecondWins, rev)
			case game.SecondWins:
				require.Equal(t, game.FirstWins, rev)
			}
		}
	}
}

func TestMoveValid(t *testing.T) {
	require.True(t, game.Move("rock").Valid())
	require.True(t, game.Move("paper").Valid())
	require.True(t, game.Move("scissors").Valid())
	require.False(t, game.Move("").Valid())
	require.False(t, game.Move("lizard").Valid())
	require.False(t, game.Move("Rock").Valid())
}
