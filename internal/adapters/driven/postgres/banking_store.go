package postgres

import (
	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.EntityStore[*domain.Account]     = (*EntityStore[*domain.Account])(nil)
	_ driven.EntityStore[*domain.Admin]       = (*EntityStore[*domain.Admin])(nil)
	_ driven.EntityStore[*domain.Branch]      = (*EntityStore[*domain.Branch])(nil)
	_ driven.EntityStore[*domain.Loan]        = (*EntityStore[*domain.Loan])(nil)
	_ driven.EntityStore[*domain.Transaction] = (*EntityStore[*domain.Transaction])(nil)
)

var accountTable = table[*domain.Account]{
	name:      "accounts",
	columns:   []string{"account_type", "balance", "created_at", "customer_id"},
	newEntity: func() *domain.Account { return &domain.Account{} },
	scanDest: func(a *domain.Account) []any {
		return []any{&a.ID, &a.AccountType, &a.Balance, &a.CreatedAt, nullID{&a.CustomerID}}
	},
	values: func(a *domain.Account) []any {
		return []any{a.AccountType, a.Balance, a.CreatedAt, refID(a.CustomerID)}
	},
}

var adminTable = table[*domain.Admin]{
	name:      "admins",
	columns:   []string{"name", "email", "password_hash"},
	newEntity: func() *domain.Admin { return &domain.Admin{} },
	scanDest: func(a *domain.Admin) []any {
		return []any{&a.ID, &a.Name, &a.Email, &a.PasswordHash}
	},
	values: func(a *domain.Admin) []any {
		return []any{a.Name, a.Email, a.PasswordHash}
	},
}

var branchTable = table[*domain.Branch]{
	name:      "branches",
	columns:   []string{"name", "location"},
	newEntity: func() *domain.Branch { return &domain.Branch{} },
	scanDest: func(b *domain.Branch) []any {
		return []any{&b.ID, &b.Name, &b.Location}
	},
	values: func(b *domain.Branch) []any {
		return []any{b.Name, b.Location}
	},
}

var loanTable = table[*domain.Loan]{
	name:      "loans",
	columns:   []string{"amount", "interest_rate", "status", "branch_id", "customer_id", "created_at"},
	newEntity: func() *domain.Loan { return &domain.Loan{} },
	scanDest: func(l *domain.Loan) []any {
		return []any{&l.ID, &l.Amount, &l.InterestRate, &l.Status, nullID{&l.BranchID}, nullID{&l.CustomerID}, &l.CreatedAt}
	},
	values: func(l *domain.Loan) []any {
		return []any{l.Amount, l.InterestRate, l.Status, refID(l.BranchID), refID(l.CustomerID), l.CreatedAt}
	},
}

var transactionTable = table[*domain.Transaction]{
	name:      "transactions",
	columns:   []string{"transaction_type", "amount", "status", "date", "account_id"},
	newEntity: func() *domain.Transaction { return &domain.Transaction{} },
	scanDest: func(t *domain.Transaction) []any {
		return []any{&t.ID, &t.TransactionType, &t.Amount, &t.Status, &t.Date, nullID{&t.AccountID}}
	},
	values: func(t *domain.Transaction) []any {
		return []any{t.TransactionType, t.Amount, t.Status, t.Date, refID(t.AccountID)}
	},
}

// NewAccountStore creates the accounts store
func NewAccountStore(db *DB) *EntityStore[*domain.Account] {
	return newEntityStore(db, accountTable)
}

// NewAdminStore creates the admins store
func NewAdminStore(db *DB) *EntityStore[*domain.Admin] {
	return newEntityStore(db, adminTable)
}

// NewBranchStore creates the branches store
func NewBranchStore(db *DB) *EntityStore[*domain.Branch] {
	return newEntityStore(db, branchTable)
}

// NewLoanStore creates the loans store
func NewLoanStore(db *DB) *EntityStore[*domain.Loan] {
	return newEntityStore(db, loanTable)
}

// NewTransactionStore creates the transactions store
func NewTransactionStore(db *DB) *EntityStore[*domain.Transaction] {
	return newEntityStore(db, transactionTable)
}
