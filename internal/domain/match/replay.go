package match

import (
	"fmt"

	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
)

// Replay rebuilds innings state from an ordered list of effective deliveries.
func Replay(p profile.Profile, setup InningsSetup, deliveries []Delivery) (Innings, error) {
	state := NewInnings(setup)
	for i, d := range deliveries {
		applied, err := ApplyDelivery(p, state, InputFromDelivery(d))
		if err != nil {
			return Innings{}, fmt.Errorf("replay delivery %d: %w", i+1, err)
		}
		state = applied.Innings
	}
	return state, nil
}
