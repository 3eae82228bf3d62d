package services

import (
	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/types"
)

// Achievement codes. The catalog rows are seeded at startup; the rules below
// key off the codes only.
const (
	achFirstPRLogged  = "FIRST_PR_LOGGED"
	achOfficialRacer  = "OFFICIAL_RACER"
	ach5KFinisher     = "5K_FINISHER"
	ach10KFinisher    = "10K_FINISHER"
	achHalfMarathoner = "HALF_MARATHONER"
	achMarathoner     = "MARATHONER"
	achUltraRunner    = "ULTRA_RUNNER"
	achSpeedy5K       = "SPEEDY_5K"
	achSub2Half       = "SUB_2_HALF"
	achBQContender    = "BQ_CONTENDER"
	achWellRounded    = "WELL_ROUNDED"
	achPersonalBest   = "PERSONAL_BEST"
)

// AchievementCatalog is the full rule set with display metadata, seeded into
// the achievements table on startup.
func AchievementCatalog() []*types.Achievement {
	return []*types.Achievement{
		{Code: achFirstPRLogged, Name: "First Steps", Description: "Log your first PR", IconName: "footprints"},
		{Code: achOfficialRacer, Name: "Official Racer", Description: "Log a PR from an official race", IconName: "medal"},
		{Code: ach5KFinisher, Name: "5K Finisher", Description: "Log your first 5K", IconName: "flag"},
		{Code: ach10KFinisher, Name: "10K Finisher", Description: "Log your first 10K", IconName: "flag"},
		{Code: achHalfMarathoner, Name: "Half Marathoner", Description: "Log your first Half Marathon", IconName: "flag"},
		{Code: achMarathoner, Name: "Marathoner", Description: "Log your first Marathon", IconName: "trophy"},
		{Code: achUltraRunner, Name: "Ultra Runner", Description: "Log your first ultramarathon", IconName: "mountain"},
		{Code: achSpeedy5K, Name: "Speedy 5K", Description: "Run a 5K under 25 minutes", IconName: "zap"},
		{Code: achSub2Half, Name: "Sub-2 Half", Description: "Run a Half Marathon under 2 hours", IconName: "zap"},
		{Code: achBQContender, Name: "BQ Contender", Description: "Run a Marathon under 3 hours", IconName: "star"},
		{Code: achWellRounded, Name: "Well Rounded", Description: "Log PRs at three different standard distances", IconName: "layers"},
		{Code: achPersonalBest, Name: "Personal Best", Description: "Beat your previous best at a distance", IconName: "trending-up"},
	}
}

var ultraDistances = map[string]bool{
	"50K": true, "50 Miles": true, "100K": true, "100 Miles": true,
}

var distanceFinisherCodes = map[string]string{
	"5K":            ach5KFinisher,
	"10K":           ach10KFinisher,
	"Half Marathon": achHalfMarathoner,
	"Marathon":      achMarathoner,
}

// evaluateAchievements decides which new awards a PR write earns. history is
// the user's PRs before the write, earned the set of achievement IDs already
// held, catalog the code-to-ID map. Already-earned rules never fire again, so
// re-scoring the same PR is a no-op.
func evaluateAchievements(catalog map[string]uuid.UUID, earned map[uuid.UUID]bool, history []*types.UserPR, newPR *types.UserPR) []uuid.UUID {
	var out []uuid.UUID
	award := func(code string) {
		id, ok := catalog[code]
		if !ok || earned[id] {
			return
		}
		for _, existing := range out {
			if existing == id {
				return
			}
		}
		out = append(out, id)
	}

	award(achFirstPRLogged)
	if newPR.IsOfficial {
		award(achOfficialRacer)
	}
	if code, ok := distanceFinisherCodes[newPR.Distance]; ok {
		award(code)
	}
	if ultraDistances[newPR.Distance] {
		award(achUltraRunner)
	}

	switch newPR.Distance {
	case "5K":
		if newPR.TimeInSeconds < 25*60 {
			award(achSpeedy5K)
		}
	case "Half Marathon":
		if newPR.TimeInSeconds < 2*3600 {
			award(achSub2Half)
		}
	case "Marathon":
		if newPR.TimeInSeconds < 3*3600 {
			award(achBQContender)
		}
	}

	distances := map[string]bool{}
	for _, pr := range history {
		if _, ok := distanceFinisherCodes[pr.Distance]; ok {
			distances[pr.Distance] = true
		}
	}
	if _, ok := distanceFinisherCodes[newPR.Distance]; ok {
		distances[newPR.Distance] = true
	}
	if len(distances) >= 3 {
		award(achWellRounded)
	}

	for _, pr := range history {
		if pr.ID != newPR.ID && pr.Distance == newPR.Distance && newPR.TimeInSeconds < pr.TimeInSeconds {
			award(achPersonalBest)
			break
		}
	}

	return out
}
