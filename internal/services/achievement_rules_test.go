package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/types"
)

func testCatalog() map[string]uuid.UUID {
	catalog := map[string]uuid.UUID{}
	for _, a := range AchievementCatalog() {
		catalog[a.Code] = uuid.New()
	}
	return catalog
}

func pr(distance string, seconds int, official bool) *types.UserPR {
	return &types.UserPR{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Distance:      distance,
		TimeInSeconds: seconds,
		IsOfficial:    official,
		Date:          "2026-05-01",
	}
}

func codesOf(catalog map[string]uuid.UUID, ids []uuid.UUID) map[string]bool {
	byID := map[uuid.UUID]string{}
	for code, id := range catalog {
		byID[id] = code
	}
	out := map[string]bool{}
	for _, id := range ids {
		out[byID[id]] = true
	}
	return out
}

func TestEvaluateAchievements(t *testing.T) {
	tests := []struct {
		name      string
		history   []*types.UserPR
		newPR     *types.UserPR
		wantCodes []string
		skipCodes []string
	}{
		{
			name:      "first pr ever",
			newPR:     pr("5K", 30*60, false),
			wantCodes: []string{achFirstPRLogged, ach5KFinisher},
			skipCodes: []string{achOfficialRacer, achSpeedy5K},
		},
		{
			name:      "official race pr",
			newPR:     pr("10K", 55*60, true),
			wantCodes: []string{achOfficialRacer, ach10KFinisher},
		},
		{
			name:      "speedy 5k",
			newPR:     pr("5K", 24*60+59, false),
			wantCodes: []string{achSpeedy5K},
		},
		{
			name:      "5k at exactly 25 minutes is not speedy",
			newPR:     pr("5K", 25*60, false),
			skipCodes: []string{achSpeedy5K},
		},
		{
			name:      "sub two half",
			newPR:     pr("Half Marathon", 2*3600-1, false),
			wantCodes: []string{achSub2Half, achHalfMarathoner},
		},
		{
			name:      "bq contender",
			newPR:     pr("Marathon", 3*3600-30, true),
			wantCodes: []string{achBQContender, achMarathoner, achOfficialRacer},
		},
		{
			name:      "ultra distance",
			newPR:     pr("50 Miles", 9*3600, false),
			wantCodes: []string{achUltraRunner},
			skipCodes: []string{ach5KFinisher, ach10KFinisher},
		},
		{
			name: "well rounded on third distance",
			history: []*types.UserPR{
				pr("5K", 26*60, false),
				pr("10K", 55*60, false),
			},
			newPR:     pr("Half Marathon", 2*3600+10, false),
			wantCodes: []string{achWellRounded},
		},
		{
			name: "ultras do not count toward well rounded",
			history: []*types.UserPR{
				pr("5K", 26*60, false),
				pr("50K", 6*3600, false),
			},
			newPR:     pr("10K", 55*60, false),
			skipCodes: []string{achWellRounded},
		},
		{
			name: "personal best beats prior",
			history: []*types.UserPR{
				pr("5K", 26*60, false),
			},
			newPR:     pr("5K", 25*60+30, false),
			wantCodes: []string{achPersonalBest},
		},
		{
			name: "slower time is not a personal best",
			history: []*types.UserPR{
				pr("5K", 25*60+30, false),
			},
			newPR:     pr("5K", 26*60, false),
			skipCodes: []string{achPersonalBest},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := testCatalog()
			got := codesOf(catalog, evaluateAchievements(catalog, map[uuid.UUID]bool{}, tc.history, tc.newPR))
			for _, code := range tc.wantCodes {
				if !got[code] {
					t.Errorf("expected %s to fire, got %v", code, got)
				}
			}
			for _, code := range tc.skipCodes {
				if got[code] {
					t.Errorf("expected %s not to fire, got %v", code, got)
				}
			}
		})
	}
}

func TestEvaluateAchievementsAlreadyEarned(t *testing.T) {
	catalog := testCatalog()
	earned := map[uuid.UUID]bool{
		catalog[achFirstPRLogged]: true,
		catalog[ach5KFinisher]:    true,
		catalog[achSpeedy5K]:      true,
	}

	got := evaluateAchievements(catalog, earned, nil, pr("5K", 24*60, false))
	if len(got) != 0 {
		t.Errorf("expected no new awards, got %v", codesOf(catalog, got))
	}
}

func TestEvaluateAchievementsNoDuplicateIDs(t *testing.T) {
	catalog := testCatalog()
	got := evaluateAchievements(catalog, map[uuid.UUID]bool{}, nil, pr("Marathon", 2*3600+50*60, true))

	seen := map[uuid.UUID]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate award %s", id)
		}
		seen[id] = true
	}
}
