package ledger

// ClientID identifies a client on the input stream.
type ClientID uint16

// TxID identifies a monetary transaction within one client's log.
type TxID uint16

// TxKind distinguishes the two monetary transaction types. Dispute, resolve
// and chargeback records are annotations on a stored transaction, never
// stored as entities of their own.
type TxKind string

const (
	KindDeposit    TxKind = "deposit"
	KindWithdrawal TxKind = "withdrawal"
)

// Transaction is one monetary event plus the dispute state later annotation
// records attached to it.
type Transaction struct {
	Kind   TxKind
	Amount float64
	State  TxState
}

// NewTransaction creates a transaction in the initial dispute state.
func NewTransaction(kind TxKind, amount float64) *Transaction {
	return &Transaction{
		Kind:   kind,
		Amount: amount,
		State:  StateNormal,
	}
}

// Transition moves the transaction to the given dispute state, or returns an
// InvalidStateTransitionError when the state machine does not allow it.
func (t *Transaction) Transition(id TxID, to TxState) error {
	if !IsValidTransition(t.State, to) {
		return &InvalidStateTransitionError{FromState: t.State, ToState: to, Tx: id}
	}
	t.State = to
	return nil
}

// TxLog is a per-client mapping from tx id to transaction that preserves
// first-insertion order. The evaluation fold walks this order, so it cannot
// be replaced by a plain map.
type TxLog struct {
	order   []TxID
	entries map[TxID]*Transaction
}

// NewTxLog creates an empty transaction log.
func NewTxLog() *TxLog {
	return &TxLog{entries: make(map[TxID]*Transaction)}
}

// Put inserts the transaction under id. When the id already exists the new
// transaction replaces the old one but keeps its original position in the
// log (last-write-wins on content, first-write-wins on order). It reports
// whether an existing entry was replaced.
func (l *TxLog) Put(id TxID, tx *Transaction) bool {
	_, replaced := l.entries[id]
	if !replaced {
		l.order = append(l.order, id)
	}
	l.entries[id] = tx
	return replaced
}

// Get looks up a transaction by id.
func (l *TxLog) Get(id TxID) (*Transaction, bool) {
	tx, ok := l.entries[id]
	return tx, ok
}

// Len returns the number of stored transactions.
func (l *TxLog) Len() int {
	return len(l.entries)
}

// Walk visits every transaction in first-insertion order.
func (l *TxLog) Walk(fn func(id TxID, tx *Transaction)) {
	for _, id := range l.order {
		fn(id, l.entries[id])
	}
}

// Client owns one transaction log. Clients are created implicitly by the
// first record referencing their id and live for the whole run.
type Client struct {
	ID  ClientID
	Log *TxLog
}

// NewClient creates a client with an empty log.
func NewClient(id ClientID) *Client {
	return &Client{ID: id, Log: NewTxLog()}
}
