package passing

// Config tunes both the pass rating and the search. Zero values are
// replaced by DefaultConfig's in Validate.
type Config struct {
	MinPassSpeed      float64 `yaml:"min_pass_speed"`
	MaxPassSpeed      float64 `yaml:"max_pass_speed"`
	NumCandidates     int     `yaml:"num_candidates"`
	StepsPerUpdate    int     `yaml:"steps_per_update"`
	ResampleEvery     int     `yaml:"resample_every"` // refinement steps between re-seeding the worst half
	Seed              uint64  `yaml:"seed"`
	EnemyReactionTime float64 `yaml:"enemy_reaction_time"`
	SidelineMargin    float64 `yaml:"sideline_margin"`
}

func DefaultConfig() Config {
	return Config{
		MinPassSpeed:      3.5,
		MaxPassSpeed:      5.5,
		NumCandidates:     12,
		StepsPerUpdate:    3,
		ResampleEvery:     10,
		Seed:              1,
		EnemyReactionTime: 0.4,
		SidelineMargin:    0.3,
	}
}

// Validate fills unset fields and restricts the rest to usable ranges.
func (c *Config) Validate() {
	d := DefaultConfig()
	if c.MinPassSpeed <= 0 {
		c.MinPassSpeed = d.MinPassSpeed
	}
	if c.MaxPassSpeed < c.MinPassSpeed {
		c.MaxPassSpeed = max(d.MaxPassSpeed, c.MinPassSpeed)
	}
	c.NumCandidates = clampInt(c.NumCandidates, 1, 256, d.NumCandidates)
	c.StepsPerUpdate = clampInt(c.StepsPerUpdate, 1, 64, d.StepsPerUpdate)
	c.ResampleEvery = clampInt(c.ResampleEvery, 1, 1000, d.ResampleEvery)
	if c.EnemyReactionTime < 0 {
		c.EnemyReactionTime = 0
	}
	if c.SidelineMargin <= 0 {
		c.SidelineMargin = d.SidelineMargin
	}
}

// clampInt restricts v to [lo, hi]; zero means unset and takes def.
func clampInt(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
