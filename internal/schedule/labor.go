package schedule

import (
	"fmt"
	"math"
)

// laborShare is the fraction of the total budget that may go to labor
// (workers plus contractor price).
const laborShare = 0.5

// costPerWorker is the budget slice that funds one worker at creation time.
const costPerWorker = 1500

// AutoWorkers derives the worker headcount from the budget during project
// creation: half the budget is labor, 1500 per worker, never less than one
// worker for a funded project. A zero or negative budget assigns nobody.
func AutoWorkers(budget float64) int {
	b := toFinite(budget)
	if b <= 0 {
		return 0
	}
	workers := int(math.Floor(b / 2 / costPerWorker))
	if workers < 1 {
		return 1
	}
	return workers
}

// ViolatesLaborCap reports whether the proposed workers + contractor price
// exceed the labor share of the budget. With no budget yet there is no cap
// to enforce, so it never violates. The cap must hold for the proposed
// state before any save is issued; a violation blocks the edit locally.
func ViolatesLaborCap(workers int, contractorPrice, budget float64) bool {
	b := toFinite(budget)
	if b <= 0 {
		return false
	}
	totalLabor := float64(workers) + toFinite(contractorPrice)
	return totalLabor > b*laborShare
}

// LaborCapMessage renders the inline message shown when the cap blocks an
// edit.
func LaborCapMessage(workers int, contractorPrice, budget float64) string {
	cap := math.Max(0, math.Round(toFinite(budget)*laborShare))
	totalLabor := float64(workers) + toFinite(contractorPrice)
	return fmt.Sprintf(
		"Labor cap exceeded: workers (%d) + contractor (%g) = %g, cap is %g (50%% of budget).",
		workers, toFinite(contractorPrice), totalLabor, cap,
	)
}
