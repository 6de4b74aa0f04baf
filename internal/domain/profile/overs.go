package profile

import "strconv"

// FormatOvers renders a legal-ball count as the "N.B" notation used on
// scorecards, e.g. 15 balls of 6 is "2.3".
func FormatOvers(legalBalls, ballsPerOver int) string {
	if ballsPerOver <= 0 || legalBalls < 0 {
		return "0.0"
	}
	return strconv.Itoa(legalBalls/ballsPerOver) + "." + strconv.Itoa(legalBalls%ballsPerOver)
}

// OversDecimal converts a legal-ball count into true fractional overs
// (whole overs + balls/ballsPerOver). "18.3" becomes 18.5, not 18.3.
func OversDecimal(legalBalls, ballsPerOver int) float64 {
	if ballsPerOver <= 0 || legalBalls <= 0 {
		return 0
	}
	return float64(legalBalls/ballsPerOver) + float64(legalBalls%ballsPerOver)/float64(ballsPerOver)
}

// RunRate is runs per over for the given legal-ball count.
func RunRate(runs, legalBalls, ballsPerOver int) float64 {
	overs := OversDecimal(legalBalls, ballsPerOver)
	if overs == 0 {
		return 0
	}
	return float64(runs) / overs
}
