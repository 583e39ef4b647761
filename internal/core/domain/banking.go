package domain

import "time"

// Entity is a persisted back-office record with a store-assigned numeric ID
type Entity interface {
	GetID() int64
	SetID(id int64)
}

// Transaction and loan states
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusCompleted = "COMPLETED"
)

// Account is a customer's bank account
type Account struct {
	ID          int64     `json:"id"`
	AccountType string    `json:"account_type" example:"SAVINGS"`
	Balance     float64   `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
	CustomerID  int64     `json:"customer_id"`
}

func (a *Account) GetID() int64   { return a.ID }
func (a *Account) SetID(id int64) { a.ID = id }

// Admin is a back-office operator.
// Password is write-only: it is hashed into PasswordHash before storage.
type Admin struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"-"`
}

func (a *Admin) GetID() int64   { return a.ID }
func (a *Admin) SetID(id int64) { a.ID = id }

// Branch is a physical bank branch
type Branch struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (b *Branch) GetID() int64   { return b.ID }
func (b *Branch) SetID(id int64) { b.ID = id }

// Loan is a loan granted to a customer through a branch
type Loan struct {
	ID           int64     `json:"id"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interest_rate"`
	Status       string    `json:"status" example:"PENDING"`
	BranchID     int64     `json:"branch_id"`
	CustomerID   int64     `json:"customer_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (l *Loan) GetID() int64   { return l.ID }
func (l *Loan) SetID(id int64) { l.ID = id }

// Transaction is a movement of money on an account
type Transaction struct {
	ID              int64     `json:"id"`
	TransactionType string    `json:"transaction_type" example:"DEPOSIT"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status" example:"COMPLETED"`
	Date            time.Time `json:"date"`
	AccountID       int64     `json:"account_id"`
}

func (t *Transaction) GetID() int64   { return t.ID }
func (t *Transaction) SetID(id int64) { t.ID = id }
