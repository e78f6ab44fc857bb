package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/polis/internal/engine"
	"github.com/playperu/polis/internal/polis"
)

type BuildRequest struct {
	Structure string `json:"structure"`
}

type TrainRequest struct {
	Unit string `json:"unit"`
}

type TaxRequest struct {
	Rate int `json:"rate"`
}

type GovernmentRequest struct {
	Government polis.Government `json:"government"`
}

// CityRequest names the counterpart of a diplomatic action.
type CityRequest struct {
	CityState polis.CityName `json:"cityState"`
}

type PolicyRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Category    polis.PolicyCategory `json:"category"`
	Effects     polis.Effects        `json:"effects"`
}

type ChoiceRequest struct {
	Index int `json:"index"`
}

func decode(r *http.Request, v any) error {
	if err := readJSON(r, v); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

func endTurn(e *engine.Engine) action {
	return func(_ *http.Request, g *polis.GameState) (*polis.GameState, error) {
		return e.EndTurn(g), nil
	}
}

func buildStructure(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req BuildRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return polis.BuildStructure(g, req.Structure)
}

func trainUnits(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req TrainRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return polis.TrainUnits(g, req.Unit)
}

func holdFestival(_ *http.Request, g *polis.GameState) (*polis.GameState, error) {
	return polis.HoldFestival(g)
}

func setTaxRate(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req TaxRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return polis.SetTaxRate(g, req.Rate)
}

func changeGovernment(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req GovernmentRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return polis.ChangeGovernment(g, req.Government)
}

func addPolicy(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req PolicyRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Category == "" {
		return nil, badRequest("name and category are required")
	}
	return polis.AddPolicy(g, polis.Policy{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Effects:     req.Effects,
		Active:      true,
	}), nil
}

func removePolicy(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	return polis.RemovePolicy(g, chi.URLParam(r, "policyID")), nil
}

// diplomacy adapts a city-targeted action that cannot fail.
func diplomacy(fn func(*polis.GameState, polis.CityName) *polis.GameState) action {
	return func(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
		var req CityRequest
		if err := decode(r, &req); err != nil {
			return nil, err
		}
		return fn(g, req.CityState), nil
	}
}

func establishTrade(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req CityRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return polis.EstablishTrade(g, req.CityState)
}

func applyChoice(r *http.Request, g *polis.GameState) (*polis.GameState, error) {
	var req ChoiceRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return polis.ApplyChoice(g, chi.URLParam(r, "eventID"), req.Index), nil
}
