package loans

type CreateLoanRequest struct {
	MemberID string `json:"memberID"`
	BookISBN string `json:"bookISBN"`
}

type ReturnBookRequest struct {
	MemberID string `json:"memberID"`
	BookISBN string `json:"bookISBN"`
}

type DeleteLoanRequest struct {
	MemberID string `json:"memberID"`
	BookISBN string `json:"bookISBN"`
}
