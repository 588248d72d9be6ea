package http

import (
	"net/http"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/services"
)

// transactionRequest is the JSON body of transaction writes. The
// category travels as an id; the stored snapshot is taken server-side.
type transactionRequest struct {
	Description string               `json:"description"`
	Amount      core.Money           `json:"amount"`
	Type        core.TransactionType `json:"type"`
	CategoryID  string               `json:"categoryId"`
	Date        string               `json:"date"`
}

func (req transactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Date:        req.Date,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, core.SortByDateDesc(transactions))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	created, err := s.svc.CreateTransaction(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	updated, err := s.svc.UpdateTransaction(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, struct {
		Expense []core.Category `json:"expense"`
		Income  []core.Category `json:"income"`
	}{
		Expense: core.ExpenseCategories(),
		Income:  core.IncomeCategories(),
	})
}
