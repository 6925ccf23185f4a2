package ledger

// Account is a derived snapshot of one client's funds. It is never stored or
// updated incrementally; every request re-derives it from the full log.
type Account struct {
	Available float64
	Held      float64
	Locked    bool
}

// Total returns the client's total funds, available plus held.
func (a Account) Total() float64 {
	return a.Available + a.Held
}

// Account folds the client's transaction log into a snapshot.
//
// The fold walks the log in first-insertion order, but evaluates each
// transaction against its end-of-stream dispute state rather than replaying
// when annotations arrived. That single authoritative pass is the contract;
// it is not a temporally faithful event replay and must not become one.
//
// Per transaction, in order:
//   - once an earlier transaction locked the account, everything after it is
//     skipped entirely;
//   - a charged-back transaction locks the account. Held funds accrued by
//     earlier still-disputed transactions are not deducted and stay in the
//     total;
//   - a disputed transaction contributes its amount to held, whatever its
//     kind;
//   - otherwise a deposit adds to available and a withdrawal subtracts,
//     unless it would overdraw, in which case it is skipped.
//
// The result is a pure function of the log; evaluating twice without
// intervening mutation yields identical snapshots.
func (c *Client) Account() Account {
	var acct Account
	c.Log.Walk(func(_ TxID, tx *Transaction) {
		if acct.Locked {
			return
		}
		switch {
		case tx.State == StateChargedBack:
			acct.Locked = true
		case tx.State == StateDisputed:
			acct.Held += tx.Amount
		case tx.Kind == KindDeposit:
			acct.Available += tx.Amount
		case tx.Kind == KindWithdrawal:
			if acct.Available >= tx.Amount {
				acct.Available -= tx.Amount
			}
		}
	})
	return acct
}
