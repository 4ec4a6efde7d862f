package engine

import (
	"math"
	"testing"
)

func rowFive(t *testing.T, size int, player PlayerColor) Board {
	t.Helper()
	board := mustBoard(t, size)
	row := size / 2
	for col := 3; col < 8; col++ {
		board = place(t, board, player, Move{Row: row, Col: col})
	}
	return board
}

func TestEvaluateFiveForPlayerAndOpponent(t *testing.T) {
	board := rowFive(t, 15, PlayerBlack)
	if score := Evaluate(board, PlayerBlack); score < 100000.0 {
		t.Fatalf("expected at least 100000 for the owner of five, got %f", score)
	}
	if score := Evaluate(board, PlayerWhite); score > -50000.0 {
		t.Fatalf("expected at most -50000 for the opponent, got %f", score)
	}
}

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	if score := Evaluate(mustBoard(t, 15), PlayerBlack); score != 0 {
		t.Fatalf("expected 0 on empty board, got %f", score)
	}
}

func TestEvaluateOpponentWeightIsHalved(t *testing.T) {
	board := mustBoard(t, 15)
	board = place(t, board, PlayerWhite, Move{Row: 7, Col: 7}, Move{Row: 7, Col: 8})
	// Only pattern: .MM.. starting at (7,6), worth 100 to its owner.
	if got := Evaluate(board, PlayerWhite); got != 100.0 {
		t.Fatalf("expected 100 for white, got %f", got)
	}
	if got := Evaluate(board, PlayerBlack); got != -50.0 {
		t.Fatalf("expected -50 for black, got %f", got)
	}
}

func TestCountPatternNoWraparound(t *testing.T) {
	board := mustBoard(t, 5)
	for col := 0; col < 5; col++ {
		board = place(t, board, PlayerBlack, Move{Row: 0, Col: col})
	}
	if got := CountPattern(board, PlayerBlack, PatternFive); got != 1 {
		t.Fatalf("expected one five, got %d", got)
	}
	if got := CountPattern(board, PlayerBlack, PatternFour); got != 0 {
		t.Fatalf("four needs an empty cell inside the board, got %d", got)
	}
	if got := Evaluate(board, PlayerBlack); got != 100000.0 {
		t.Fatalf("expected exactly the five weight, got %f", got)
	}
}

func TestCountPatternOpenFourAndThree(t *testing.T) {
	board := mustBoard(t, 15)
	board = place(t, board, PlayerBlack,
		Move{Row: 7, Col: 3}, Move{Row: 7, Col: 4}, Move{Row: 7, Col: 5}, Move{Row: 7, Col: 6})
	if got := CountPattern(board, PlayerBlack, PatternOpenFour); got != 1 {
		t.Fatalf("expected one open four, got %d", got)
	}
	if got := CountPattern(board, PlayerBlack, PatternFour); got != 1 {
		t.Fatalf("expected one four, got %d", got)
	}
	totals := CountThreats(board, PlayerBlack)
	if totals.OpenFour != 1 || totals.Four != 1 || totals.Five != 0 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if CountThreats(board, PlayerWhite) != (ThreatTotals{}) {
		t.Fatalf("white has no patterns")
	}
}

func TestEvaluatorCustomWeights(t *testing.T) {
	board := mustBoard(t, 15)
	board = place(t, board, PlayerBlack, Move{Row: 7, Col: 7}, Move{Row: 7, Col: 8})
	weights := DefaultHeuristics()
	weights.OpenTwo = 7
	evaluator := NewEvaluator(weights, nil)
	if got := evaluator.Evaluate(board, PlayerBlack); got != 7 {
		t.Fatalf("expected custom open-two weight, got %f", got)
	}
}

func TestPositionJitterIsDeterministicAndBounded(t *testing.T) {
	board := mustBoard(t, 15)
	board = place(t, board, PlayerBlack, Move{Row: 7, Col: 7})
	board = place(t, board, PlayerWhite, Move{Row: 6, Col: 6})

	jitter := NewPositionJitter(42, 0.05)
	evaluator := NewEvaluator(DefaultHeuristics(), jitter)
	first := evaluator.Evaluate(board, PlayerBlack)
	second := evaluator.Evaluate(board.Clone(), PlayerBlack)
	if first != second {
		t.Fatalf("jittered evaluation must repeat: %f vs %f", first, second)
	}
	base := Evaluate(board, PlayerBlack)
	if math.Abs(first-base) > 0.05 {
		t.Fatalf("jitter out of bounds: base %f jittered %f", base, first)
	}
	other := NewEvaluator(DefaultHeuristics(), NewPositionJitter(43, 0.05)).Evaluate(board, PlayerBlack)
	if other == first {
		t.Fatalf("different seeds should move the offset")
	}
}

func TestNoJitterWithZeroAmplitude(t *testing.T) {
	board := place(t, mustBoard(t, 9), PlayerBlack, Move{Row: 4, Col: 4})
	if got := NewPositionJitter(1, 0).Offset(board, PlayerBlack); got != 0 {
		t.Fatalf("expected no offset, got %f", got)
	}
}
