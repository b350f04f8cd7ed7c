package dashboard

// Transaction is a wallet movement; negative amounts are debits.
type Transaction struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

// SavingsGoal tracks progress towards a target amount.
type SavingsGoal struct {
	Name    string  `json:"name"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	Percent int     `json:"percent"`
}

// Subscription is a recurring charge. Canceled ones have no due date.
type Subscription struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"dueDate,omitempty"`
	DueLabel string  `json:"dueLabel,omitempty"`
}

// Bill is a one-off amount owed on a date.
type Bill struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"dueDate"`
	DueLabel string  `json:"dueLabel"`
}

// Medication is a prescription with its next refill.
type Medication struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	RefillDate  string  `json:"refillDate"`
	RefillLabel string  `json:"refillLabel"`
}

// Debt is an outstanding balance being paid down.
type Debt struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Total          float64 `json:"total"`
	Paid           float64 `json:"paid"`
	Remaining      float64 `json:"remaining"`
	InterestRate   float64 `json:"interestRate"`
	MinimumPayment float64 `json:"minimumPayment"`
}

// Widgets groups every card the dashboard shell shows.
type Widgets struct {
	Transactions  []Transaction  `json:"transactions"`
	SavingsGoal   SavingsGoal    `json:"savingsGoal"`
	Subscriptions []Subscription `json:"subscriptions"`
	Bills         []Bill         `json:"bills"`
	Medications   []Medication   `json:"medications"`
	Debts         []Debt         `json:"debts"`
}

// SampleWidgets returns placeholder data for a freshly built dashboard.
// Each call returns fresh slices.
func SampleWidgets() Widgets {
	subs := []Subscription{
		{ID: "1", Name: "Netflix", Status: "Current", Amount: 15.99, DueDate: "2025-03-01"},
		{ID: "2", Name: "Spotify", Status: "Current", Amount: 9.99, DueDate: "2025-03-05"},
		{ID: "3", Name: "Hulu", Status: "Canceled", Amount: 11.99},
	}
	for i := range subs {
		if subs[i].DueDate != "" {
			subs[i].DueLabel = FormatDueDate(subs[i].DueDate)
		}
	}

	bills := []Bill{
		{ID: "1", Name: "Electricity", Amount: 120.5, DueDate: "2025-03-01"},
		{ID: "2", Name: "Water", Amount: 45.0, DueDate: "2025-03-05"},
		{ID: "3", Name: "Internet", Amount: 60.0, DueDate: "2025-03-10"},
	}
	for i := range bills {
		bills[i].DueLabel = FormatDueDate(bills[i].DueDate)
	}

	meds := []Medication{
		{ID: "1", Name: "Insulin", Price: 65.99, RefillDate: "2025-03-01"},
		{ID: "2", Name: "Albuterol Inhaler", Price: 39.99, RefillDate: "2025-03-05"},
		{ID: "3", Name: "Allegra", Price: 17.99, RefillDate: "2025-03-10"},
	}
	for i := range meds {
		meds[i].RefillLabel = FormatDueDate(meds[i].RefillDate)
	}

	debts := []Debt{
		{ID: "1", Name: "Credit Card", Total: 5000, Paid: 1500, InterestRate: 18.99, MinimumPayment: 200},
		{ID: "2", Name: "Car Loan", Total: 15000, Paid: 4000, InterestRate: 4.5, MinimumPayment: 350},
	}
	for i := range debts {
		debts[i].Remaining = debts[i].Total - debts[i].Paid
	}

	goal := SavingsGoal{Name: "New Laptop", Target: 1000, Current: 650}
	if goal.Target > 0 {
		goal.Percent = int(goal.Current * 100 / goal.Target)
	}

	return Widgets{
		Transactions: []Transaction{
			{ID: "1", Description: "Allowance Deposit", Amount: 50.0, Date: "2025-02-25"},
			{ID: "2", Description: "Netflix Subscription", Amount: -15.99, Date: "2025-02-24"},
		},
		SavingsGoal:   goal,
		Subscriptions: subs,
		Bills:         bills,
		Medications:   meds,
		Debts:         debts,
	}
}
