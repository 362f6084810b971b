// Command cli is a small operator tool for the ledger. It authenticates with
// a username and a password read from the terminal, then runs one command
// against the database directly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/nestfund/ledger/infra/initializer"
	"github.com/nestfund/ledger/pkg/app"
	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/money"
	"github.com/nestfund/ledger/pkg/service/ledger"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>")
	fmt.Println("  accounts <username>")
	fmt.Println("  balance <username>")
	fmt.Println("  deposit <username> <account_id> <amount>")
	fmt.Println("  withdraw <username> <account_id> <amount>")
}

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(slog.Default())
	if err != nil {
		return err
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	a := app.New(deps, cfg)

	if cmd == "register" {
		if len(args) < 2 {
			usage()
			return fmt.Errorf("register needs a username and an email")
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		u, err := a.UserService.Create(ctx, args[0], args[1], password)
		if err != nil {
			return err
		}
		color.Green("User created: %s (%s)", u.Username, u.ID)
		return nil
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	u, err := a.AuthService.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("invalid username or password")
	}

	switch cmd {
	case "accounts":
		accts, err := a.LedgerService.Accounts(ctx, u.ID)
		if err != nil {
			return err
		}
		for _, acct := range accts {
			fmt.Printf("%s  %-10s %-20s %s\n", acct.ID, acct.Kind, acct.Name, acct.Balance)
		}
	case "balance":
		total, err := a.LedgerService.TotalBalance(ctx, u.ID)
		if err != nil {
			return err
		}
		color.Green("Total balance: %s", total)
	case "deposit", "withdraw":
		if len(args) < 3 {
			usage()
			return fmt.Errorf("%s needs an account id and an amount", cmd)
		}
		accountID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		amount, err := money.FromDecimalString(args[2])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		var res *ledger.MutationResult
		if cmd == "deposit" {
			res, err = a.LedgerService.Deposit(ctx, u.ID, accountID, amount, nil)
		} else {
			res, err = a.LedgerService.Withdraw(ctx, u.ID, accountID, amount, nil)
		}
		if err != nil {
			return err
		}
		color.Green("%s of %s applied. New balance: %s", cmd, amount, res.Account.Balance)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
