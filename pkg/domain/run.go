package domain

// Verdict is the terminal outcome of a simulation.
type Verdict string

const (
	VerdictAccept  Verdict = "accept"  // some branch reached the accept state
	VerdictReject  Verdict = "reject"  // every branch died
	VerdictStopped Verdict = "stopped" // depth bound exhausted
)

// Run is the result of one simulation. It retains the configuration arena and the
// level-indexed tree so callers can ask for the accepting path and statistics.
type Run struct {
	Input    string
	MaxDepth int

	Verdict Verdict
	// Steps is the level of the accept node, the level at which the last branch
	// died, or the depth bound, depending on Verdict.
	Steps int

	// TotalConfigurations counts every configuration visited, duplicates included.
	TotalConfigurations int

	// Configurations is the arena; a ConfigID indexes into it.
	Configurations []Configuration
	// Levels holds, per level, the IDs of the configurations queued for that level.
	Levels [][]ConfigID
	// LevelBranching holds successors/width for every level that produced successors.
	LevelBranching []float64

	AcceptID ConfigID
}

// Accepted reports whether the run found an accepting configuration.
func (r *Run) Accepted() bool {
	return r.Verdict == VerdictAccept
}

// Depth returns the index of the deepest level in the tree.
func (r *Run) Depth() int {
	return len(r.Levels) - 1
}

// Config returns the configuration with the given ID.
func (r *Run) Config(id ConfigID) Configuration {
	return r.Configurations[id]
}

// LevelSizes returns the number of configurations queued at each level.
func (r *Run) LevelSizes() []int {
	sizes := make([]int, len(r.Levels))
	for i, lvl := range r.Levels {
		sizes[i] = len(lvl)
	}
	return sizes
}

// PathStep is one configuration of the accepting path with its tape view.
type PathStep struct {
	Configuration
	View TapeView
}

// AcceptingPath returns the configurations from the root to the accept node.
// It returns nil when the run did not accept.
func (r *Run) AcceptingPath() []PathStep {
	if !r.Accepted() {
		return nil
	}

	var reversed []Configuration
	for id := r.AcceptID; id != NoParent; id = r.Configurations[id].Parent {
		reversed = append(reversed, r.Configurations[id])
	}

	path := make([]PathStep, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		c := reversed[i]
		path = append(path, PathStep{Configuration: c, View: c.View()})
	}
	return path
}

// AverageNondeterminism is the mean of the per-level branching factors, or 0 when no
// level produced a successor.
func (r *Run) AverageNondeterminism() float64 {
	if len(r.LevelBranching) == 0 {
		return 0
	}
	var sum float64
	for _, b := range r.LevelBranching {
		sum += b
	}
	return sum / float64(len(r.LevelBranching))
}
