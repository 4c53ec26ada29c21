package domain

// DevGenerateTransactionsRequest asks the dev tooling to drive random
// transfers through the ledger.
type DevGenerateTransactionsRequest struct {
	Count int `json:"count"`
}

// DevGenerateTransactionsResponse summarizes a generation run. Rejected
// counts transfers the validator refused; those leave no trace in the log.
type DevGenerateTransactionsResponse struct {
	Success   bool   `json:"success"`
	Generated int    `json:"generated"`
	Rejected  int    `json:"rejected"`
	Message   string `json:"message"`
}
