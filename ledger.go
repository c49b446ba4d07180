package agency

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/agency/date"
	"github.com/etnz/agency/kvstore"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Ledger owns the customers, collections, deposits, agent profile and
// settings of one installation.
//
// The Ledger is the single writer of its KV: every successful mutation
// rewrites the whole state. It is not safe for concurrent use.
type Ledger struct {
	kv    KV
	log   *zap.Logger
	newID func() string
	now   func() time.Time

	profile     AgentProfile
	settings    AppSettings
	customers   []Customer
	collections []Collection
	deposits    []Deposit

	// stale holds the default encoding of keys whose stored value could
	// not be decoded, unreadable the list records that could not be.
	stale      map[string][]byte
	unreadable map[string][]json.RawMessage
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used to report storage problems.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithIDGenerator replaces the default ULID generator.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Open loads a ledger from kv. A nil kv means an in-memory storage.
//
// Open never fails: missing or unreadable values are replaced by their
// defaults and reported to the logger.
func Open(kv KV, opts ...Option) *Ledger {
	if kv == nil {
		kv = kvstore.NewMemory()
	}
	l := &Ledger{
		kv:    kv,
		log:   zap.NewNop(),
		newID: func() string { return ulid.Make().String() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.load()
	return l
}

// Profile returns the agent profile.
func (l *Ledger) Profile() AgentProfile { return l.profile }

// SetProfile overwrites the agent profile.
func (l *Ledger) SetProfile(p AgentProfile) error {
	l.profile = p
	return l.Save()
}

// Settings returns the application settings.
func (l *Ledger) Settings() AppSettings { return l.settings }

// SetSettings validates and overwrites the application settings.
func (l *Ledger) SetSettings(s AppSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	l.settings = s
	return l.Save()
}

// --- Customers ---

// Customers returns a copy of all customers, in creation order.
func (l *Ledger) Customers() []Customer { return slices.Clone(l.customers) }

// Customer returns the customer with this id.
func (l *Ledger) Customer(id string) (Customer, bool) {
	i := l.customerIndex(id)
	if i < 0 {
		return Customer{}, false
	}
	return l.customers[i], true
}

// SearchCustomers returns the customers ordered by the numeric value of their
// short code, malformed codes counting as 0 and ties keeping creation order.
//
// A non blank term keeps only the customers whose short code, name, phone or
// account number contains it, ignoring case.
func (l *Ledger) SearchCustomers(term string) []Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []Customer
	for _, c := range l.customers {
		if term == "" || c.matches(term) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b Customer) int {
		return shortCodeValue(a.ShortCode).Cmp(shortCodeValue(b.ShortCode))
	})
	return out
}

// CustomerByShortCode returns the customer with this short code.
func (l *Ledger) CustomerByShortCode(code string) (Customer, bool) {
	i := slices.IndexFunc(l.customers, func(c Customer) bool { return c.ShortCode == code })
	if i < 0 {
		return Customer{}, false
	}
	return l.customers[i], true
}

func (l *Ledger) customerIndex(id string) int {
	return slices.IndexFunc(l.customers, func(c Customer) bool { return c.ID == id })
}

// NextShortCode returns the short code a new customer would get.
func (l *Ledger) NextShortCode() string { return NextShortCode(l.customers) }

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}
	return nil
}

// checkCustomer validates the short code of c against all other customers.
// A short code identical to old, the stored version of c if any, is not
// checked for format so that records loaded from an older storage remain
// editable.
func (l *Ledger) checkCustomer(c Customer, old *Customer) error {
	if (old == nil || c.ShortCode != old.ShortCode) && !ValidShortCode(c.ShortCode) {
		return fmt.Errorf("%w: %q", ErrInvalidShortCode, c.ShortCode)
	}
	for _, other := range l.customers {
		if other.ID != c.ID && other.ShortCode == c.ShortCode {
			return fmt.Errorf("%w: %q is used by %q", ErrDuplicateShortCode, c.ShortCode, other.Name)
		}
	}
	return nil
}

func (l *Ledger) newCustomer(in CustomerInput) (Customer, error) {
	c := Customer{
		ID:            l.newID(),
		ShortCode:     in.ShortCode,
		Name:          in.Name,
		Phone:         in.Phone,
		Address:       in.Address,
		AccountNumber: in.AccountNumber,
		Email:         in.Email,
		CreatedAt:     l.now(),
	}
	if c.ShortCode == "" {
		c.ShortCode = l.NextShortCode()
	}
	if err := l.checkCustomer(c, nil); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// AddCustomer creates a customer. The name is required.
//
// An error wrapping ErrPersist comes with a valid customer: it has been
// added but not saved.
func (l *Ledger) AddCustomer(in CustomerInput) (Customer, error) {
	if err := checkName(in.Name); err != nil {
		return Customer{}, err
	}
	c, err := l.newCustomer(in)
	if err != nil {
		return Customer{}, err
	}
	l.customers = append(l.customers, c)
	return c, l.Save()
}

// UpdateCustomer merges u over the customer with this id.
//
// An error wrapping ErrPersist comes with a valid customer: it has been
// updated but not saved.
func (l *Ledger) UpdateCustomer(id string, u CustomerUpdate) (Customer, error) {
	i := l.customerIndex(id)
	if i < 0 {
		return Customer{}, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}
	old := l.customers[i]
	c := u.apply(old)
	if c.Name != old.Name {
		if err := checkName(c.Name); err != nil {
			return Customer{}, err
		}
	}
	if err := l.checkCustomer(c, &old); err != nil {
		return Customer{}, err
	}
	l.customers[i] = c
	return c, l.Save()
}

// DeleteCustomer removes the customer with this id. Its collections are kept.
func (l *Ledger) DeleteCustomer(id string) error {
	i := l.customerIndex(id)
	if i < 0 {
		return fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}
	l.customers = slices.Delete(l.customers, i, i+1)
	return l.Save()
}

// --- Collections ---

// Collections returns a copy of the collections accepted by all filters, in
// creation order.
func (l *Ledger) Collections(filters ...func(Collection) bool) []Collection {
	var out []Collection
next:
	for _, c := range l.collections {
		for _, accept := range filters {
			if !accept(c) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

// Collection returns the collection with this id.
func (l *Ledger) Collection(id string) (Collection, bool) {
	i := l.collectionIndex(id)
	if i < 0 {
		return Collection{}, false
	}
	return l.collections[i], true
}

func (l *Ledger) collectionIndex(id string) int {
	return slices.IndexFunc(l.collections, func(c Collection) bool { return c.ID == id })
}

// NextReceiptNumber returns the receipt number a new collection made on day
// would get.
func (l *Ledger) NextReceiptNumber(day date.Date) string {
	return NextReceiptNumber(l.collections, day)
}

func checkCollection(c Collection) error {
	if c.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s", ErrInvalidAmount, c.Amount)
	}
	if c.Penalty.IsNegative() {
		return fmt.Errorf("%w: penalty %s", ErrInvalidAmount, c.Penalty)
	}
	return nil
}

// AddCollection records a collection.
//
// An error wrapping ErrPersist comes with a valid collection: it has been
// added but not saved.
func (l *Ledger) AddCollection(in CollectionInput) (Collection, error) {
	c := Collection{
		ID:            l.newID(),
		CustomerID:    in.CustomerID,
		Amount:        in.Amount,
		Penalty:       in.Penalty,
		ReceiptNumber: in.ReceiptNumber,
		CreatedAt:     in.CreatedAt,
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = l.now()
	}
	if err := checkCollection(c); err != nil {
		return Collection{}, err
	}
	if c.ReceiptNumber == "" {
		c.ReceiptNumber = l.NextReceiptNumber(c.Day())
	}
	l.collections = append(l.collections, c)
	return c, l.Save()
}

// UpdateCollection merges u over the collection with this id.
//
// An error wrapping ErrPersist comes with a valid collection: it has been
// updated but not saved.
func (l *Ledger) UpdateCollection(id string, u CollectionUpdate) (Collection, error) {
	i := l.collectionIndex(id)
	if i < 0 {
		return Collection{}, fmt.Errorf("collection %q: %w", id, ErrNotFound)
	}
	c := u.apply(l.collections[i])
	if err := checkCollection(c); err != nil {
		return Collection{}, err
	}
	l.collections[i] = c
	return c, l.Save()
}

// DeleteCollection removes the collection with this id.
func (l *Ledger) DeleteCollection(id string) error {
	i := l.collectionIndex(id)
	if i < 0 {
		return fmt.Errorf("collection %q: %w", id, ErrNotFound)
	}
	l.collections = slices.Delete(l.collections, i, i+1)
	return l.Save()
}

// --- Deposits ---

// Deposits returns a copy of all deposits, in creation order.
func (l *Ledger) Deposits() []Deposit { return slices.Clone(l.deposits) }

// Deposit returns the deposit with this id.
func (l *Ledger) Deposit(id string) (Deposit, bool) {
	i := l.depositIndex(id)
	if i < 0 {
		return Deposit{}, false
	}
	return l.deposits[i], true
}

func (l *Ledger) depositIndex(id string) int {
	return slices.IndexFunc(l.deposits, func(d Deposit) bool { return d.ID == id })
}

func checkDeposit(d Deposit) error {
	if d.Amount.IsNegative() {
		return fmt.Errorf("%w: deposit %s", ErrInvalidAmount, d.Amount)
	}
	return nil
}

// AddDeposit records a bank deposit.
//
// An error wrapping ErrPersist comes with a valid deposit: it has been
// added but not saved.
func (l *Ledger) AddDeposit(in DepositInput) (Deposit, error) {
	d := Deposit{
		ID:        l.newID(),
		Amount:    in.Amount,
		CreatedAt: in.CreatedAt,
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = l.now()
	}
	if err := checkDeposit(d); err != nil {
		return Deposit{}, err
	}
	l.deposits = append(l.deposits, d)
	return d, l.Save()
}

// UpdateDeposit merges u over the deposit with this id.
//
// An error wrapping ErrPersist comes with a valid deposit: it has been
// updated but not saved.
func (l *Ledger) UpdateDeposit(id string, u DepositUpdate) (Deposit, error) {
	i := l.depositIndex(id)
	if i < 0 {
		return Deposit{}, fmt.Errorf("deposit %q: %w", id, ErrNotFound)
	}
	d := u.apply(l.deposits[i])
	if err := checkDeposit(d); err != nil {
		return Deposit{}, err
	}
	l.deposits[i] = d
	return d, l.Save()
}

// DeleteDeposit removes the deposit with this id.
func (l *Ledger) DeleteDeposit(id string) error {
	i := l.depositIndex(id)
	if i < 0 {
		return fmt.Errorf("deposit %q: %w", id, ErrNotFound)
	}
	l.deposits = slices.Delete(l.deposits, i, i+1)
	return l.Save()
}
