package game

// PhaseMultipliers scale the inventory term. Holding ropes matters little
// early and a lot once someone nears the prize.
type PhaseMultipliers struct {
	Early float64 `yaml:"early" validate:"gte=0"`
	Mid   float64 `yaml:"mid" validate:"gte=0"`
	Late  float64 `yaml:"late" validate:"gte=0"`
}

func (m PhaseMultipliers) For(p Phase) float64 {
	switch p {
	case Early:
		return m.Early
	case Mid:
		return m.Mid
	default:
		return m.Late
	}
}

type Weights struct {
	Progress         float64          `yaml:"progress" validate:"gte=0"`
	Inventory        float64          `yaml:"inventory" validate:"gte=0"`
	Threat           float64          `yaml:"threat" validate:"gte=0"`
	PhaseMultipliers PhaseMultipliers `yaml:"phase_multipliers"`
}

func DefaultWeights() Weights {
	return Weights{
		Progress:  25,
		Inventory: 15,
		Threat:    30,
		PhaseMultipliers: PhaseMultipliers{
			Early: 0.2,
			Mid:   0.5,
			Late:  1.0,
		},
	}
}

// Evaluator scores positions as a weighted sum of race progress, rope
// inventory and rope threats.
type Evaluator struct {
	Weights Weights
}

// Evaluate is the function form of an evaluator.
type Evaluate func(gs *GameState, perspective PlayerID) float64

// Score rates gs for perspective. Decided games return ±WinScore.
func (e Evaluator) Score(gs *GameState, perspective PlayerID) float64 {
	if gs.IsTerminal() {
		if gs.Winner == perspective {
			return WinScore
		}
		return -WinScore
	}

	b := gs.Board
	me := gs.PlayerByID(perspective)
	opp := gs.PlayerByID(perspective.Other())

	progress := float64(b.DistanceToPrize(opp.Position) - b.DistanceToPrize(me.Position))
	inventory := float64(me.Ropes-opp.Ropes) * e.Weights.PhaseMultipliers.For(gs.Phase())

	threat := 0.0
	for _, o := range gs.Obstacles {
		if !o.Active {
			continue
		}
		switch {
		case o.Owner == me.ID && b.OnShortestPath(opp.Position, o.Anchor):
			threat++
		case o.Owner == opp.ID && b.OnShortestPath(me.Position, o.Anchor):
			threat--
		}
	}

	return e.Weights.Progress*progress + e.Weights.Inventory*inventory + e.Weights.Threat*threat
}
