package engine

// MateScore is the sentinel magnitude for a won/lost position. Mate
// distance is encoded by subtracting the ply at which the mate occurs, so
// shorter forced wins score strictly higher than longer ones.
const MateScore = 1_000_000

// MaxPly bounds search-stack allocation and the mate-distance adjustment
// window in transposition.go.
const MaxPly = 128

// DefaultDelta is the asymmetric defense weighting multiplier applied to
// the opponent's pattern score. Empirically tuned; exposed as a config
// knob rather than a hardcoded literal, since changing it needs a fresh
// matchup regression to validate.
const DefaultDelta = 2.2
