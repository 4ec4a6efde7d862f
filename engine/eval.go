package engine

// Pattern templates are read along a line: 'M' is a stone of the player being
// counted, '.' an empty cell. Cells past the edge never match.
const (
	PatternFive      = "MMMMM"
	PatternOpenFour  = ".MMMM."
	PatternFour      = "MMMM."
	PatternOpenThree = ".MMM."
	PatternThree     = "MMM.."
	PatternOpenTwo   = ".MM.."
)

type ThreatTotals struct {
	Five      int
	OpenFour  int
	Four      int
	OpenThree int
	Three     int
	OpenTwo   int
}

type patternMatch struct {
	pattern string
	apply   func(*ThreatTotals)
}

var evalPatterns = [...]patternMatch{
	{pattern: PatternFive, apply: func(t *ThreatTotals) { t.Five++ }},
	{pattern: PatternOpenFour, apply: func(t *ThreatTotals) { t.OpenFour++ }},
	{pattern: PatternFour, apply: func(t *ThreatTotals) { t.Four++ }},
	{pattern: PatternOpenThree, apply: func(t *ThreatTotals) { t.OpenThree++ }},
	{pattern: PatternThree, apply: func(t *ThreatTotals) { t.Three++ }},
	{pattern: PatternOpenTwo, apply: func(t *ThreatTotals) { t.OpenTwo++ }},
}

// Evaluator scores boards with the weighted pattern counts of both sides. It
// holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	weights HeuristicConfig
	jitter  Jitter
}

func NewEvaluator(weights HeuristicConfig, jitter Jitter) *Evaluator {
	if weights == (HeuristicConfig{}) {
		weights = DefaultHeuristics()
	}
	if jitter == nil {
		jitter = NoJitter{}
	}
	return &Evaluator{weights: weights, jitter: jitter}
}

var defaultEvaluator = NewEvaluator(DefaultHeuristics(), NoJitter{})

// Evaluate scores the board for forPlayer with the default weights and no
// jitter.
func Evaluate(board Board, forPlayer PlayerColor) float64 {
	return defaultEvaluator.Evaluate(board, forPlayer)
}

// Evaluate returns the player's weighted pattern total minus half of the
// opponent's, plus the configured jitter.
func (e *Evaluator) Evaluate(board Board, forPlayer PlayerColor) float64 {
	me := CountThreats(board, forPlayer)
	opp := CountThreats(board, forPlayer.Opponent())
	score := weightedSum(me, e.weights) - weightedSum(opp, e.weights)/2
	return score + e.jitter.Offset(board, forPlayer)
}

// CountThreats counts every pattern for player in a single sweep.
func CountThreats(board Board, player PlayerColor) ThreatTotals {
	var totals ThreatTotals
	cell := CellFromPlayer(player)
	size := board.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for i := 0; i < 4; i++ {
				dr := lineDirections[i][0]
				dc := lineDirections[i][1]
				for _, entry := range evalPatterns {
					if matchAt(board, row, col, dr, dc, cell, entry.pattern) {
						entry.apply(&totals)
					}
				}
			}
		}
	}
	return totals
}

// CountPattern counts placements of template for player starting at any cell
// in any of the four line directions.
func CountPattern(board Board, player PlayerColor, template string) int {
	cell := CellFromPlayer(player)
	size := board.Size()
	count := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for i := 0; i < 4; i++ {
				if matchAt(board, row, col, lineDirections[i][0], lineDirections[i][1], cell, template) {
					count++
				}
			}
		}
	}
	return count
}

func matchAt(board Board, row, col, dr, dc int, cell Cell, pattern string) bool {
	endRow := row + (len(pattern)-1)*dr
	endCol := col + (len(pattern)-1)*dc
	if !board.InBounds(row, col) || !board.InBounds(endRow, endCol) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		got := board.At(row+i*dr, col+i*dc)
		switch pattern[i] {
		case 'M':
			if got != cell {
				return false
			}
		case '.':
			if got != CellEmpty {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func weightedSum(t ThreatTotals, w HeuristicConfig) float64 {
	return float64(t.Five)*w.Five +
		float64(t.OpenFour)*w.OpenFour +
		float64(t.Four)*w.Four +
		float64(t.OpenThree)*w.OpenThree +
		float64(t.Three)*w.Three +
		float64(t.OpenTwo)*w.OpenTwo
}
