package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Searcher runs time-bounded iterative-deepening alpha-beta searches. It only
// holds configuration, so one Searcher can serve several games at once.
type Searcher struct {
	evaluator *Evaluator
	logger    zerolog.Logger
	now       func() time.Time
}

type Option func(*Searcher)

func WithEvaluator(evaluator *Evaluator) Option {
	return func(s *Searcher) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// WithClock replaces time.Now as the source of the deadline checks.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		evaluator: defaultEvaluator,
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSearcherFromConfig builds a searcher whose evaluator follows cfg.
func NewSearcherFromConfig(cfg Config, opts ...Option) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = append([]Option{WithEvaluator(NewEvaluatorFromConfig(cfg))}, opts...)
	return NewSearcher(opts...), nil
}

type Result struct {
	Move           Move
	Score          float64
	CompletedDepth int
	Nodes          int
	Fallback       bool
	DepthDurations []time.Duration
	Elapsed        time.Duration
}

// GetMove returns the best move for player found within timeLimit, searching
// at most maxDepth plies.
func (s *Searcher) GetMove(board Board, player PlayerColor, maxDepth int, timeLimit time.Duration) (Move, error) {
	result, err := s.Search(board, player, maxDepth, timeLimit)
	if err != nil {
		return Move{}, err
	}
	return result.Move, nil
}

// Search deepens one ply at a time from 1 to maxDepth. A depth that runs into
// the deadline is thrown away whole; the answer always comes from the deepest
// depth whose root moves were all searched. If no depth completes, the
// fallback move is returned.
func (s *Searcher) Search(board Board, player PlayerColor, maxDepth int, timeLimit time.Duration) (Result, error) {
	if maxDepth <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, maxDepth)
	}
	start := s.now()
	ctx := &searchContext{
		board:     board.Clone(),
		root:      player,
		deadline:  start.Add(timeLimit),
		now:       s.now,
		evaluator: s.evaluator,
	}
	result := Result{Move: fallbackMove(board), Fallback: true}

	for depth := 1; depth <= maxDepth; depth++ {
		depthStart := s.now()
		ctx.timedOut = false
		score, move, ok := ctx.negamax(depth, math.Inf(-1), math.Inf(1), player)
		if ctx.timedOut {
			s.logger.Debug().Int("depth", depth).Msg("depth-discarded-deadline")
			break
		}
		if !ok {
			break
		}
		took := s.now().Sub(depthStart)
		result.Move = move
		result.Score = score
		result.CompletedDepth = depth
		result.Fallback = false
		result.DepthDurations = append(result.DepthDurations, took)
		s.logger.Debug().
			Int("depth", depth).
			Str("move", move.String()).
			Float64("score", score).
			Int("nodes", ctx.nodes).
			Dur("took", took).
			Msg("depth-complete")
	}

	result.Nodes = ctx.nodes
	result.Elapsed = s.now().Sub(start)
	nps := 0.0
	if result.Elapsed > 0 {
		nps = float64(result.Nodes) / result.Elapsed.Seconds()
	}
	s.logger.Debug().
		Str("player", player.String()).
		Str("move", result.Move.String()).
		Int("completed", result.CompletedDepth).
		Int("max_depth", maxDepth).
		Int("nodes", result.Nodes).
		Float64("nps", nps).
		Bool("fallback", result.Fallback).
		Dur("elapsed", result.Elapsed).
		Msg("search-returning")
	return result, nil
}

// fallbackMove is the centre when it is free, else the first candidate. On a
// full board it is the (occupied) centre, which callers treat as a draw.
func fallbackMove(board Board) Move {
	center := board.Center()
	if board.IsEmpty(center.Row, center.Col) {
		return center
	}
	if moves := CandidateMoves(board); len(moves) > 0 {
		return moves[0]
	}
	return center
}

// searchContext is the state of one Search call. Its board is a private
// clone mutated with strict place/remove pairs.
type searchContext struct {
	board     Board
	root      PlayerColor
	deadline  time.Time
	now       func() time.Time
	evaluator *Evaluator
	nodes     int
	timedOut  bool
}

func (c *searchContext) expired() bool {
	return !c.now().Before(c.deadline)
}

// static scores the current board from the point of view of toMove.
func (c *searchContext) static(toMove PlayerColor) float64 {
	score := c.evaluator.Evaluate(c.board, c.root)
	if toMove != c.root {
		return -score
	}
	return score
}

// negamax returns the value of the position for toMove and the move that
// produced it. ok is false when no move was searched at this node.
func (c *searchContext) negamax(depth int, alpha, beta float64, toMove PlayerColor) (float64, Move, bool) {
	c.nodes++
	if c.expired() {
		c.timedOut = true
		return c.static(toMove), Move{}, false
	}
	if depth == 0 || HasFive(c.board, PlayerBlack) || HasFive(c.board, PlayerWhite) {
		return c.static(toMove), Move{}, false
	}
	moves := CandidateMoves(c.board)
	if len(moves) == 0 {
		return c.static(toMove), Move{}, false
	}

	cell := CellFromPlayer(toMove)
	best := math.Inf(-1)
	var bestMove Move
	found := false
	for _, move := range moves {
		c.board.place(move, cell)
		value, _, _ := c.negamax(depth-1, -beta, -alpha, toMove.Opponent())
		c.board.remove(move)
		value = -value
		if !found || value > best {
			best = value
			bestMove = move
			found = true
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
		if c.expired() {
			c.timedOut = true
			break
		}
	}
	return best, bestMove, found
}
