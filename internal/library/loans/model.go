package loans

import "time"

// Loan is a row of the loans table. LoanULID is an internal correlation
// id, LoanID is the public human-readable identifier.
type Loan struct {
	LoanID       string     `json:"loanID"`
	LoanULID     string     `json:"loanULID"`
	ISBN         string     `json:"isbn"`
	MemberID     string     `json:"memberID"`
	LoanDate     time.Time  `json:"loanDate"`
	DueDate      time.Time  `json:"dueDate"`
	Returned     bool       `json:"returned"`
	ReturnedDate *time.Time `json:"returnedDate"`
}

// Summary is the aggregate view served by /loans/summary.
type Summary struct {
	Total    int64 `json:"totalLoans"`
	Active   int64 `json:"activeLoans"`
	Returned int64 `json:"returnedLoans"`
}
