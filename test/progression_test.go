//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fitxp/internal/entries"
	"github.com/2beens/fitxp/internal/profile"
	"github.com/2beens/fitxp/internal/progression"
	"github.com/2beens/fitxp/internal/recipes"
	"github.com/2beens/fitxp/internal/weights"
	"github.com/2beens/fitxp/internal/xp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) profileOf(ctx context.Context, token string) profile.Profile {
	status, body := s.do(ctx, "GET", "/profile", token, nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var p profile.Profile
	s.decode(s.T(), body, &p)
	return p
}

func (s *IntegrationTestSuite) TestEntriesDriveXp() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, login := s.newUser(ctx)
	token := login.Token
	date := "2024-02-10"

	p := s.profileOf(ctx, token)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, profile.DefaultCalorieGoal, p.CalorieGoal)

	// right on the goal: +5 for the entry, +50 for the day
	status, body := s.do(ctx, "POST", "/entries", token, entries.AddParams{
		Date:     date,
		FoodName: "big lasagna",
		Calories: float64(profile.DefaultCalorieGoal),
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var entry entries.Entry
	s.decode(t, body, &entry)
	assert.Equal(t, 55, s.profileOf(ctx, token).XP)

	// no longer within the goal window
	calories := 500.0
	status, body = s.do(ctx, "PUT", "/entries/"+entry.ID, token, entries.Patch{Calories: &calories})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 5, s.profileOf(ctx, token).XP)

	status, body = s.do(ctx, "GET", "/entries/date/"+date+"/totals", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var totals entries.Totals
	s.decode(t, body, &totals)
	assert.Equal(t, 500.0, totals.Calories)

	status, _ = s.do(ctx, "DELETE", "/entries/"+entry.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, s.profileOf(ctx, token).XP)

	status, body = s.do(ctx, "GET", "/xp/events", token, nil)
	require.Equal(t, http.StatusOK, status)
	var events struct {
		Events []xp.Event `json:"events"`
		Total  int        `json:"total"`
	}
	s.decode(t, body, &events)
	require.Equal(t, 4, events.Total)
	sum := 0
	for _, e := range events.Events {
		sum += e.Amount
	}
	assert.Zero(t, sum)
}

func (s *IntegrationTestSuite) TestStreakBonus() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, login := s.newUser(ctx)
	token := login.Token

	for day := 1; day <= 3; day++ {
		status, body := s.do(ctx, "POST", "/entries", token, entries.AddParams{
			Date:     fmt.Sprintf("2024-03-0%d", day),
			FoodName: "apple",
			Calories: 80,
		})
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body := s.do(ctx, "GET", "/streak/2024-03-03", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"date":"2024-03-03","streak":3}`, string(body))

	p := s.profileOf(ctx, token)
	assert.Equal(t, 3, p.Streak)
	assert.Equal(t, 3*progression.LogEntryXp+progression.StreakBonusXp, p.XP)
}

func (s *IntegrationTestSuite) TestWeightsAndRecipes() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, login := s.newUser(ctx)
	token := login.Token

	status, body := s.do(ctx, "POST", "/weights", token, weights.AddParams{Date: "2024-04-01", Weight: 81.4})
	require.Equal(t, http.StatusCreated, status, string(body))
	var w weights.Weight
	s.decode(t, body, &w)
	assert.Equal(t, progression.WeightLogXp, s.profileOf(ctx, token).XP)

	status, _ = s.do(ctx, "GET", "/weights/date/2024-04-01", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(ctx, "DELETE", "/weights/"+w.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, s.profileOf(ctx, token).XP)

	kcal := 600.0
	status, body = s.do(ctx, "POST", "/recipes", token, recipes.CreateParams{
		Name:     "chili",
		Servings: 3,
		Items:    []recipes.RecipeItem{{Name: "beans", Calories: &kcal}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var recipe recipes.Recipe
	s.decode(t, body, &recipe)
	assert.Equal(t, 200, recipe.Calories)

	status, body = s.do(ctx, "POST", "/recipes/"+recipe.ID+"/log", token, recipes.LogParams{Date: "2024-04-02", Servings: 1})
	require.Equal(t, http.StatusCreated, status, string(body))
	var entry entries.Entry
	s.decode(t, body, &entry)
	assert.Equal(t, 200.0, entry.Calories)
	assert.Equal(t, progression.LogEntryXp, s.profileOf(ctx, token).XP)
}

func (s *IntegrationTestSuite) TestPrestigeNotEligible() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, login := s.newUser(ctx)

	status, body := s.do(ctx, "POST", "/profile/prestige", login.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "level cap")

	status, body = s.do(ctx, "GET", "/profile/progress", login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var progress progression.ProgressResponse
	s.decode(t, body, &progress)
	assert.False(t, progress.CanPrestige)
	assert.Equal(t, xp.LevelCapFor(0), progress.LevelCap)
}
