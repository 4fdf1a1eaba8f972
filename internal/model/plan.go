package model

import (
	"fmt"
	"strings"
)

type Plan string

const (
	PlanPlatinum Plan = "platinum"
	PlanDiamond  Plan = "diamond"
	PlanGold     Plan = "gold"
)

// DefaultPlan is applied to stores created without an explicit plan.
const DefaultPlan = PlanGold

// ParsePlan normalises case and whitespace before checking the enum, so
// "Gold" and " GOLD " are both accepted as gold.
func ParsePlan(raw string) (Plan, error) {
	p := Plan(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case PlanPlatinum, PlanDiamond, PlanGold:
		return p, nil
	}
	return "", fmt.Errorf("invalid plan %q: must be one of platinum, diamond, gold", raw)
}
