package polis

// Structure is a building the player can raise. A built structure lives on
// as an active policy carrying its per-turn effects.
type Structure struct {
	Name        string         `json:"name"`
	Category    PolicyCategory `json:"category"`
	Description string         `json:"description"`
	Cost        Effects        `json:"cost"`
	Effects     Effects        `json:"effects"`
}

var Structures = []Structure{
	{
		Name:        "Agora",
		Category:    CategoryEconomic,
		Description: "+20 gold/turn, +10 happiness",
		Cost:        Effects{Gold: 300},
		Effects:     Effects{Gold: 20, Happiness: 10},
	},
	{
		Name:        "Temple",
		Category:    CategoryCultural,
		Description: "+25 happiness",
		Cost:        Effects{Gold: 250},
		Effects:     Effects{Happiness: 25},
	},
	{
		Name:        "Barracks",
		Category:    CategoryMilitary,
		Description: "+50 military strength",
		Cost:        Effects{Gold: 350},
		Effects:     Effects{Military: 50},
	},
	{
		Name:        "Farm",
		Category:    CategoryEconomic,
		Description: "+30 food/turn",
		Cost:        Effects{Gold: 200},
		Effects:     Effects{Food: 30},
	},
	{
		Name:        "Granary",
		Category:    CategoryEconomic,
		Description: "Stores surplus grain against famine, +20 food/turn",
		Cost:        Effects{Food: 200},
		Effects:     Effects{Food: 20},
	},
	{
		Name:        "Market",
		Category:    CategoryEconomic,
		Description: "+30 gold/turn",
		Cost:        Effects{Gold: 300},
		Effects:     Effects{Gold: 30},
	},
	{
		Name:        "Watchtower",
		Category:    CategoryMilitary,
		Description: "+10 military strength",
		Cost:        Effects{Gold: 150},
		Effects:     Effects{Military: 10},
	},
}

func StructureByName(name string) (Structure, bool) {
	for _, s := range Structures {
		if s.Name == name {
			return s, true
		}
	}
	return Structure{}, false
}

// Unit is a batch of troops bought with gold.
type Unit struct {
	Name     string `json:"name"`
	Strength int    `json:"strength"`
	Cost     int    `json:"cost"`
}

var Units = []Unit{
	{Name: "Infantry", Strength: 100, Cost: 200},
	{Name: "Cavalry", Strength: 30, Cost: 150},
	{Name: "Archers", Strength: 50, Cost: 300},
}

func UnitByName(name string) (Unit, bool) {
	for _, u := range Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

const (
	FestivalCost      = 200
	FestivalHappiness = 15

	MinTaxRate = 1
	MaxTaxRate = 30
)

type taxBracket struct {
	upTo        int
	name        string
	description string
	happiness   int
}

var taxBrackets = []taxBracket{
	{5, "Minimal Taxation", "Very low taxes, high citizen happiness, low income", 5},
	{10, "Fair Taxation", "Moderate taxes, neutral happiness effect, balanced income", 0},
	{15, "Standard Taxation", "Standard tax rate, slight happiness penalty, good income", -5},
	{25, "Heavy Taxation", "High taxes, reduced happiness, excellent income", -10},
	{MaxTaxRate, "Oppressive Taxation", "Very high taxes, significantly reduced happiness, maximum income", -20},
}

func bracketFor(rate int) taxBracket {
	for _, b := range taxBrackets {
		if rate <= b.upTo {
			return b
		}
	}
	return taxBrackets[len(taxBrackets)-1]
}

// TaxPolicy builds the Economic policy for the given rate and population.
func TaxPolicy(rate, population int) (Policy, error) {
	if rate < MinTaxRate || rate > MaxTaxRate {
		return Policy{}, ErrInvalidTaxRate
	}
	b := bracketFor(rate)
	return Policy{
		Name:        b.name,
		Description: b.description,
		Effects: Effects{
			Gold:      (population / 10) * rate / 100,
			Happiness: b.happiness,
		},
		Category: CategoryEconomic,
		Active:   true,
	}, nil
}
