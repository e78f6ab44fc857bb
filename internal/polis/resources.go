package polis

const (
	MinPopulation = 1000
	MinAIMilitary = 100
	MaxHappiness  = 100

	// TradeBonus is the flat gold income per relationship holding a Trade treaty.
	TradeBonus = 50
)

type Resources struct {
	Gold       int `json:"gold"`
	Food       int `json:"food"`
	Population int `json:"population"`
	Military   int `json:"military"`
	Happiness  int `json:"happiness"`

	Factors *HappinessFactors `json:"happinessFactors,omitempty"`
}

// HappinessFactors is a diagnostic breakdown of citizen mood. It is
// recomputed every turn and does not feed back into Resources.Happiness.
type HappinessFactors struct {
	TaxationLevel      int `json:"taxationLevel"`
	FoodSecurity       int `json:"foodSecurity"`
	MilitaryPresence   int `json:"militaryPresence"`
	CulturalInvestment int `json:"culturalInvestment"`
	WarWeariness       int `json:"warWeariness"`
	PoliticalStability int `json:"politicalStability"`
	RecentEvents       int `json:"recentEvents"`
}

// Total sums all factors. A nil breakdown totals zero.
func (f *HappinessFactors) Total() int {
	if f == nil {
		return 0
	}
	return f.TaxationLevel + f.FoodSecurity + f.MilitaryPresence + f.CulturalInvestment +
		f.WarWeariness + f.PoliticalStability + f.RecentEvents
}

// Effects is a partial ledger of signed resource deltas.
type Effects map[ResourceKind]int

func (e Effects) Clone() Effects {
	if e == nil {
		return nil
	}
	out := make(Effects, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Field returns a pointer to the ledger entry for k, or nil for an unknown kind.
func (r *Resources) Field(k ResourceKind) *int {
	switch k {
	case Gold:
		return &r.Gold
	case Food:
		return &r.Food
	case Population:
		return &r.Population
	case Military:
		return &r.Military
	case Happiness:
		return &r.Happiness
	}
	return nil
}

// Get returns the amount held of k.
func (r Resources) Get(k ResourceKind) int {
	if p := r.Field(k); p != nil {
		return *p
	}
	return 0
}

// Apply adds every delta in e to the ledger without clamping.
func (r *Resources) Apply(e Effects) {
	for _, k := range ResourceKinds {
		if d, ok := e[k]; ok {
			*r.Field(k) += d
		}
	}
}

// Spend subtracts every cost in c. Callers check Shortfall first.
func (r *Resources) Spend(c Effects) {
	for _, k := range ResourceKinds {
		if v, ok := c[k]; ok {
			*r.Field(k) -= v
		}
	}
}

// Clamp enforces the player ledger bounds.
func (r *Resources) Clamp() {
	r.Gold = max(0, r.Gold)
	r.Food = max(0, r.Food)
	r.Military = max(0, r.Military)
	r.Population = max(MinPopulation, r.Population)
	r.Happiness = Clamp(r.Happiness, 0, MaxHappiness)
}

// ClampAI enforces the bounds for AI-controlled city-states.
func (r *Resources) ClampAI() {
	r.Gold = max(0, r.Gold)
	r.Food = max(0, r.Food)
	r.Military = max(MinAIMilitary, r.Military)
	r.Population = max(MinPopulation, r.Population)
}

// Shortfall reports the first resource in cost that r cannot cover.
func (r Resources) Shortfall(cost Effects) error {
	for _, k := range ResourceKinds {
		need, ok := cost[k]
		if !ok || need <= 0 {
			continue
		}
		if have := r.Get(k); have < need {
			return &InsufficientError{Resource: k, Have: have, Need: need}
		}
	}
	return nil
}

func (r Resources) clone() Resources {
	out := r
	if r.Factors != nil {
		f := *r.Factors
		out.Factors = &f
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
