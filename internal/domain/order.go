package domain

const (
	OrderStatusOK  = "OK"
	OrderStatusErr = "ERR"
)

// Customer is the contact block of an order submission.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// OrderRequest is the payload sent to the order endpoint.
type OrderRequest struct {
	Customer Customer   `json:"customer"`
	Items    []CartLine `json:"items"`
}

// OrderResult is the order endpoint's response envelope.
type OrderResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
