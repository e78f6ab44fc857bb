package polis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const StartingYear = 450

var StartingResources = Resources{
	Gold:       1000,
	Food:       1000,
	Population: 5000,
	Military:   500,
	Happiness:  70,
}

var locations = map[CityName]Location{
	Athens:  {X: 400, Y: 300},
	Sparta:  {X: 600, Y: 400},
	Thebes:  {X: 500, Y: 100},
	Corinth: {X: 200, Y: 400},
}

// NewGame founds the player's city and seeds the remaining city-states with
// random governments and resources.
func NewGame(city CityName, gov Government, userID int64, rng Rand, now time.Time) (*GameState, error) {
	if !city.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	if !gov.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGovernment, gov)
	}

	g := &GameState{
		ID:     uuid.NewString(),
		UserID: userID,
		Turn:   1,
		Year:   StartingYear,
		PlayerCityState: CityState{
			ID:            uuid.NewString(),
			Name:          city,
			Government:    gov,
			Resources:     StartingResources,
			Location:      locations[city],
			IsPlayerOwned: true,
		},
		Relationships: []Relationship{},
		Policies:      []Policy{},
		Events:        []Event{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, name := range CityNames {
		if name == city {
			continue
		}
		g.OtherCityStates = append(g.OtherCityStates, CityState{
			ID:         uuid.NewString(),
			Name:       name,
			Government: Governments[rng.IntN(len(Governments))],
			Resources: Resources{
				Gold:       500 + rng.IntN(1000),
				Food:       500 + rng.IntN(1000),
				Population: 3000 + rng.IntN(5000),
				Military:   300 + rng.IntN(500),
				Happiness:  50 + rng.IntN(30),
			},
			Location: locations[name],
		})
		g.Relationships = append(g.Relationships, Relationship{
			CityState: name,
			Status:    Neutral,
			Treaties:  []string{},
		})
	}

	g.Prepend(g.NewEvent(EventPolitical, SeverityPositive, "City State Founded",
		fmt.Sprintf("Your city-state of %s has been established under a %s government. May the gods favor your rule!", city, gov)))
	return g, nil
}
