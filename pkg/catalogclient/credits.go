package catalogclient

// Search credit defaults.
const (
	DefaultCredits = 100
	SearchCost     = 2
)

// credits is the search balance. It is guarded by the owning Session.
type credits struct {
	balance int
}

// charge deducts cost when the balance allows it.
func (c *credits) charge(cost int) bool {
	if c.balance < cost {
		return false
	}
	c.balance -= cost
	return true
}
