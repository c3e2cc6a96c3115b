package model

import "time"

// GameID identifies a recorded multiplayer game.
type GameID string

// Winner designates the outcome of a two-player game.
type Winner string

const (
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerTie     Winner = "tie"
)

// DeriveWinner computes the winner from the two final scores. The stored
// Winner field is always the result of this function, never caller-supplied,
// so a record can never be inconsistent with its scores.
func DeriveWinner(player1Score, player2Score int) Winner {
	switch {
	case player1Score > player2Score:
		return WinnerPlayer1
	case player2Score > player1Score:
		return WinnerPlayer2
	default:
		return WinnerTie
	}
}

// MultiplayerGame is an immutable record of a local two-player result,
// submitted by the device owner.
type MultiplayerGame struct {
	ID           GameID
	UserID       UserID
	Theme        string
	Player1Score int
	Player2Score int
	Winner       Winner
	TimeTaken    int
	TotalMoves   int
	Timestamp    time.Time
	CreatedAt    time.Time
}
