package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"gomoku/engine"
)

func TestHumanPlayerReturnsPendingMoveImmediately(t *testing.T) {
	human := NewHumanPlayer(time.Hour)
	human.SetPendingMove(engine.NewMove(3, 4))
	choice, err := human.ChooseMove(context.Background(), engine.Board{}, engine.PlayerBlack)
	if err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}
	if choice.Move != engine.NewMove(3, 4) || choice.Depth != 0 {
		t.Fatalf("unexpected choice %+v", choice)
	}
	if human.HasPendingMove() {
		t.Fatalf("pending move must be consumed")
	}
}

func TestHumanPlayerWaitsForMove(t *testing.T) {
	human := NewHumanPlayer(5 * time.Millisecond)
	go func() {
		time.Sleep(20 * time.Millisecond)
		human.SetPendingMove(engine.NewMove(1, 2))
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	choice, err := human.ChooseMove(ctx, engine.Board{}, engine.PlayerWhite)
	if err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}
	if choice.Move != engine.NewMove(1, 2) {
		t.Fatalf("unexpected move %v", choice.Move)
	}
}

func TestHumanPlayerStopsOnCancel(t *testing.T) {
	human := NewHumanPlayer(5 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := human.ChooseMove(ctx, engine.Board{}, engine.PlayerBlack); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHumanPlayerDefaultInterval(t *testing.T) {
	if human := NewHumanPlayer(0); human.pollInterval != 100*time.Millisecond {
		t.Fatalf("expected 100ms default, got %v", human.pollInterval)
	}
}
