package scorecard

import (
	"fmt"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

// DismissalText renders the batting-card description of a dismissal.
func DismissalText(wicketType match.WicketType, bowler, fielder string) string {
	switch wicketType {
	case match.WicketBowled:
		return "b " + bowler
	case match.WicketCaught:
		return fmt.Sprintf("c %s b %s", fielder, bowler)
	case match.WicketCaughtBehind:
		return fmt.Sprintf("c †%s b %s", fielder, bowler)
	case match.WicketCaughtAndBowled:
		return "c & b " + bowler
	case match.WicketLBW:
		return "lbw b " + bowler
	case match.WicketRunOut:
		if fielder == "" {
			return "run out"
		}
		return fmt.Sprintf("run out (%s)", fielder)
	case match.WicketStumped:
		return fmt.Sprintf("st †%s b %s", fielder, bowler)
	case match.WicketHitWicket:
		return "hit wicket b " + bowler
	case match.WicketObstructingField:
		return "obstructing the field"
	case match.WicketTimedOut:
		return "timed out"
	case match.WicketRetiredHurt:
		return "retired hurt"
	case match.WicketRetiredOut:
		return "retired out"
	default:
		return string(wicketType)
	}
}
