package stats

// StrictlyBefore returns a predicate reporting whether a game played at
// (season, week) precedes the target week. Both the strength scorer and the
// model bank's training-set selection go through this one predicate, so the
// lookahead rule cannot drift between them.
func StrictlyBefore(targetSeason, targetWeek int) func(season, week int) bool {
	return func(season, week int) bool {
		if season != targetSeason {
			return season < targetSeason
		}
		return week < targetWeek
	}
}
