package models

// InvoiceItem is one line of a generated invoice. Hours keeps the display
// string from the timesheet entry; Amount is hours times rate.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Hours       string  `json:"hours"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// InvoiceParty identifies one side of an invoice.
type InvoiceParty struct {
	Name       string  `json:"name"`
	NDISNumber *string `json:"ndis_number,omitempty"`
	ABN        *string `json:"abn,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
}

// BankDetails is where invoice payment goes.
type BankDetails struct {
	BSB           string `json:"bsb"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name"`
}

// Invoice is a derived, read-only document built from timesheet entries. It
// is computed on demand and never persisted.
type Invoice struct {
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	DueDate       string        `json:"due_date"`
	Client        InvoiceParty  `json:"client"`
	Worker        InvoiceParty  `json:"worker"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TransportFee  float64       `json:"transport_fee"`
	Total         float64       `json:"total"`
	Bank          *BankDetails  `json:"bank_details,omitempty"`
}
