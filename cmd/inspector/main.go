// Command inspector dumps every record of every store file in readable
// form. It is a debugging tool; it takes shared locks only.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/flatbank/flatbank/internal/infrastructure/adapter/model"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/repository"
	"github.com/flatbank/flatbank/internal/infrastructure/config"
	"github.com/flatbank/flatbank/internal/infrastructure/filestore"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	dir := cfg.Store.Dir

	dumpUsers(dir)
	dumpAccounts(dir)
	dumpTransactions(dir)
	dumpLoans(dir)
	dumpFeedback(dir)
}

func ts(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func dumpUsers(dir string) {
	fmt.Println("=== users.db ===")
	store, err := filestore.Open[model.UserRecord](dir, repository.UsersFile)
	if err != nil {
		log.Fatalf("open users: %v", err)
	}
	err = store.Scan(func(rec *model.UserRecord) bool {
		u := rec.ToUser()
		fmt.Printf("id=%d username=%s role=%s name=%q email=%s phone=%s active=%t created=%s\n",
			u.ID, u.Username, u.Role, u.FullName(), u.Email, u.Phone, u.Active, ts(u.CreatedAt))
		return true
	})
	if err != nil {
		log.Fatalf("scan users: %v", err)
	}
}

func dumpAccounts(dir string) {
	fmt.Println("=== accounts.db ===")
	store, err := filestore.Open[model.AccountRecord](dir, repository.AccountsFile)
	if err != nil {
		log.Fatalf("open accounts: %v", err)
	}
	err = store.Scan(func(rec *model.AccountRecord) bool {
		a := rec.ToAccount()
		fmt.Printf("account=%d user=%d balance=%d active=%t created=%s\n",
			a.AccountID, a.UserID, a.Balance, a.Active, ts(a.CreatedAt))
		return true
	})
	if err != nil {
		log.Fatalf("scan accounts: %v", err)
	}
}

func dumpTransactions(dir string) {
	fmt.Println("=== transactions.db ===")
	store, err := filestore.Open[model.TransactionRecord](dir, repository.TransactionsFile)
	if err != nil {
		log.Fatalf("open transactions: %v", err)
	}
	err = store.Scan(func(rec *model.TransactionRecord) bool {
		t := rec.ToTransaction()
		fmt.Printf("id=%d from=%d to=%d amount=%d narration=%s at=%s\n",
			t.ID, t.FromAccount, t.ToAccount, t.Amount, t.Narration, ts(t.Timestamp))
		return true
	})
	if err != nil {
		log.Fatalf("scan transactions: %v", err)
	}
}

func dumpLoans(dir string) {
	fmt.Println("=== loans.db ===")
	store, err := filestore.Open[model.LoanRecord](dir, repository.LoansFile)
	if err != nil {
		log.Fatalf("open loans: %v", err)
	}
	err = store.Scan(func(rec *model.LoanRecord) bool {
		l := rec.ToLoan()
		fmt.Printf("id=%d user=%d amount=%d status=%s assigned_to=%d applied=%s processed=%s remarks=%q\n",
			l.ID, l.UserID, l.Amount, l.Status, l.AssignedTo, ts(l.AppliedAt), ts(l.ProcessedAt), l.Remarks)
		return true
	})
	if err != nil {
		log.Fatalf("scan loans: %v", err)
	}
}

func dumpFeedback(dir string) {
	fmt.Println("=== feedback.db ===")
	store, err := filestore.Open[model.FeedbackRecord](dir, repository.FeedbackFile)
	if err != nil {
		log.Fatalf("open feedback: %v", err)
	}
	err = store.Scan(func(rec *model.FeedbackRecord) bool {
		f := rec.ToFeedback()
		fmt.Printf("id=%d user=%d reviewed=%t action=%q submitted=%s message=%q\n",
			f.ID, f.UserID, f.Reviewed, f.ActionTaken, ts(f.SubmittedAt), f.Message)
		return true
	})
	if err != nil {
		log.Fatalf("scan feedback: %v", err)
	}
}
