package types

// Activity is one confirmed deposit or withdrawal recorded by the service.
type Activity struct {
	Wallet    string `json:"wallet"`
	Mint      string `json:"mint"`
	Action    string `json:"action"`
	Amount    uint64 `json:"amount"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
}

const (
	ActionDeposit  = "deposit"
	ActionWithdraw = "withdraw"
)
