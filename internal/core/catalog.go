package core

// Predefined category catalog. Built once at init and never mutated;
// transactions embed a value copy of their category, so renames here
// would not rewrite history anyway.

var expenseCategories = []Category{
	{ID: "home", Name: "Moradia", Icon: "Home", Color: "#3B82F6", Type: Expense},
	{ID: "food", Name: "Alimentação", Icon: "UtensilsCrossed", Color: "#10B981", Type: Expense},
	{ID: "transport", Name: "Transporte", Icon: "Car", Color: "#F97316", Type: Expense},
	{ID: "entertainment", Name: "Lazer", Icon: "Gamepad2", Color: "#8B5CF6", Type: Expense},
	{ID: "health", Name: "Saúde", Icon: "Heart", Color: "#F87171", Type: Expense},
	{ID: "education", Name: "Educação", Icon: "GraduationCap", Color: "#60A5FA", Type: Expense},
	{ID: "shopping", Name: "Compras", Icon: "ShoppingBag", Color: "#FBBF24", Type: Expense},
	{ID: "bills", Name: "Contas Fixas", Icon: "FileText", Color: "#9CA3AF", Type: Expense},
	{ID: "other-expense", Name: "Outros", Icon: "MoreHorizontal", Color: "#6B7280", Type: Expense},
}

var incomeCategories = []Category{
	{ID: "salary", Name: "Salário", Icon: "Briefcase", Color: "#10B981", Type: Income},
	{ID: "freelance", Name: "Freelance", Icon: "Laptop", Color: "#3B82F6", Type: Income},
	{ID: "investment", Name: "Investimentos", Icon: "TrendingUp", Color: "#8B5CF6", Type: Income},
	{ID: "gift", Name: "Presente", Icon: "Gift", Color: "#EC4899", Type: Income},
	{ID: "other-income", Name: "Outros", Icon: "Plus", Color: "#64748B", Type: Income},
}

var categoryIndex = func() map[string]Category {
	idx := make(map[string]Category, len(expenseCategories)+len(incomeCategories))
	for _, c := range expenseCategories {
		idx[c.ID] = c
	}
	for _, c := range incomeCategories {
		idx[c.ID] = c
	}
	return idx
}()

// ExpenseCategories returns the predefined expense categories. The
// returned slice is a copy; callers may reorder it freely.
func ExpenseCategories() []Category {
	return append([]Category(nil), expenseCategories...)
}

// IncomeCategories returns the predefined income categories.
func IncomeCategories() []Category {
	return append([]Category(nil), incomeCategories...)
}

// AllCategories returns the full catalog, expenses first.
func AllCategories() []Category {
	out := make([]Category, 0, len(expenseCategories)+len(incomeCategories))
	out = append(out, expenseCategories...)
	out = append(out, incomeCategories...)
	return out
}

// CategoryByID looks up a catalog category. The boolean is false for
// unknown ids; the caller decides whether that is an error.
func CategoryByID(id string) (Category, bool) {
	c, ok := categoryIndex[id]
	return c, ok
}
