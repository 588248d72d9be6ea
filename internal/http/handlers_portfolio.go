package http

import (
	"net/http"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/services"
)

type accountRequest struct {
	Name    string           `json:"name"`
	Type    core.AccountType `json:"type"`
	Balance core.Money       `json:"balance"`
	Icon    string           `json:"icon"`
	Color   string           `json:"color"`
}

func (req accountRequest) input() services.AccountInput {
	return services.AccountInput{
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
		Icon:    req.Icon,
		Color:   req.Color,
	}
}

type cardRequest struct {
	Name       string        `json:"name"`
	Type       core.CardType `json:"type"`
	LastDigits string        `json:"lastDigits"`
	Limit      core.Money    `json:"limit"`
	UsedLimit  core.Money    `json:"usedLimit"`
	ClosingDay int           `json:"closingDay"`
	DueDay     int           `json:"dueDay"`
	AccountID  string        `json:"accountId"`
	Color      string        `json:"color"`
}

func (req cardRequest) input() services.CardInput {
	return services.CardInput{
		Name:       req.Name,
		Type:       req.Type,
		LastDigits: req.LastDigits,
		Limit:      req.Limit,
		UsedLimit:  req.UsedLimit,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		AccountID:  req.AccountID,
		Color:      req.Color,
	}
}

type goalRequest struct {
	Name                string     `json:"name"`
	TargetAmount        core.Money `json:"targetAmount"`
	CurrentAmount       core.Money `json:"currentAmount"`
	Deadline            string     `json:"deadline"`
	Icon                string     `json:"icon"`
	Color               string     `json:"color"`
	AccountID           string     `json:"accountId"`
	MonthlyContribution core.Money `json:"monthlyContribution"`
}

func (req goalRequest) input() services.GoalInput {
	return services.GoalInput{
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		Deadline:            req.Deadline,
		Icon:                req.Icon,
		Color:               req.Color,
		AccountID:           req.AccountID,
		MonthlyContribution: req.MonthlyContribution,
	}
}

// accountsResponse pairs the list with its derived total.
type accountsResponse struct {
	Accounts     []core.Account `json:"accounts"`
	TotalBalance core.Money     `json:"totalBalance"`
}

// cardView is a card with derived display values. Usage percent is
// clamped for rendering; the raw ratio lives in the engine.
type cardView struct {
	core.Card
	AvailableLimit core.Money `json:"availableLimit"`
	UsagePercent   float64    `json:"usagePercent"`
	NearLimit      bool       `json:"nearLimit"`
	DaysUntilDue   *int       `json:"daysUntilDue,omitempty"`
}

// goalView is a goal with derived projection values. Progress is
// clamped to [0, 100] for rendering.
type goalView struct {
	core.Goal
	ProgressPercent  float64    `json:"progressPercent"`
	MonthsRemaining  int        `json:"monthsRemaining"`
	RequiredPerMonth core.Money `json:"requiredPerMonth"`
	OnTrack          bool       `json:"onTrack"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.ListAccounts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, accountsResponse{
		Accounts:     accounts,
		TotalBalance: core.TotalBalance(accounts),
	})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	created, err := s.svc.CreateAccount(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	updated, err := s.svc.UpdateAccount(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.svc.ListCards(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	today := s.now()
	views := make([]cardView, 0, len(cards))
	for _, c := range cards {
		v := cardView{
			Card:      c,
			NearLimit: core.IsNearLimit(c, core.DefaultNearLimitThreshold),
		}
		if c.Type == core.CardCredit && c.Limit.Cents > 0 {
			v.AvailableLimit = c.Limit.Sub(c.UsedLimit)
			v.UsagePercent = clampPercent(float64(c.UsedLimit.Cents) / float64(c.Limit.Cents) * 100)
		}
		if days, ok := core.DaysUntilDue(c, today); ok {
			v.DaysUntilDue = &days
		}
		views = append(views, v)
	}
	s.writeJSON(w, r, http.StatusOK, struct {
		Cards          []cardView `json:"cards"`
		AvailableLimit core.Money `json:"availableLimit"`
	}{
		Cards:          views,
		AvailableLimit: core.AvailableCardLimit(cards),
	})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	created, err := s.svc.CreateCard(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	updated, err := s.svc.UpdateCard(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCard(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.ListGoals(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	today := s.now()
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		required := core.RequiredMonthlyContribution(g, today)
		views = append(views, goalView{
			Goal:             g,
			ProgressPercent:  clampPercent(core.GoalProgressPercent(g)),
			MonthsRemaining:  core.MonthsRemaining(g, today),
			RequiredPerMonth: required,
			OnTrack:          g.MonthlyContribution.Cents >= required.Cents,
		})
	}
	s.writeJSON(w, r, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	created, err := s.svc.CreateGoal(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	updated, err := s.svc.UpdateGoal(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

// clampPercent bounds a ratio to [0, 100] for display.
func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
