package game

// Move is one of the three throwable symbols.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
)

// beats maps each move to the move it defeats: rock→scissors→paper→rock.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Valid reports whether m is one of the three known symbols.
func (m Move) Valid() bool {
	_, ok := beats[m]
	return ok
}

// Outcome of a pair of simultaneous moves.
type Outcome int

const (
	Draw Outcome = iota
	FirstWins
	SecondWins
)

// Resolve computes the outcome of a vs b. Equal moves draw; otherwise the
// move whose target equals the other wins.
func Resolve(a, b Move) Outcome {
	if a == b {
		return Draw
	}
	if beats[a] == b {
		return FirstWins
	}
	return SecondWins
}
