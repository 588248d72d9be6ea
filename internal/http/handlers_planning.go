package http

import (
	"net/http"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/services"
)

type budgetRequest struct {
	CategoryID string     `json:"categoryId"`
	Amount     core.Money `json:"amount"`
	Month      string     `json:"month"`
}

type profileRequest struct {
	Name          *string     `json:"name"`
	Age           *int        `json:"age"`
	MonthlySalary *core.Money `json:"monthlySalary"`
}

type onboardingRequest struct {
	Name          string              `json:"name"`
	Age           int                 `json:"age"`
	MonthlySalary core.Money          `json:"monthlySalary"`
	Survey        *core.SurveyAnswers `json:"survey"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.svc.ListBudgets(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// With ?month=YYYY-MM the list comes back as usage rows.
	if month := r.URL.Query().Get("month"); month != "" {
		key := core.MonthKey(month)
		if !core.ValidMonthKey(key) {
			s.writeError(w, r, core.ErrInvalidMonthKey)
			return
		}
		transactions, err := s.svc.ListTransactions(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, core.BudgetUsage(transactions, budgets, key))
		return
	}

	s.writeJSON(w, r, http.StatusOK, budgets)
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	saved, err := s.svc.UpsertBudget(r.Context(), services.BudgetInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Month:      req.Month,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusOK, saved)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteBudget(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.GetProfile(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if profile == nil {
		// No onboarding yet; the UI uses this to show the wizard.
		s.writeJSON(w, r, http.StatusOK, struct {
			OnboardingCompleted bool `json:"onboardingCompleted"`
		}{})
		return
	}
	s.writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	updated, err := s.svc.UpdateProfile(r.Context(), services.ProfileUpdate{
		Name:          req.Name,
		Age:           req.Age,
		MonthlySalary: req.MonthlySalary,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	profile, err := s.svc.CompleteOnboarding(r.Context(), services.OnboardingInput{
		Name:          req.Name,
		Age:           req.Age,
		MonthlySalary: req.MonthlySalary,
		Survey:        req.Survey,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusCreated, profile)
}
