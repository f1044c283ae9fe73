// Command splitease is a thin CLI over the expense-splitting ledger. It
// stands in for the dashboard UI: every subcommand reads or mutates state
// exclusively through the service layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/config"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/service"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/internal/storage/memory"
	"github.com/splitease/splitease/internal/storage/sqlite"
	"github.com/splitease/splitease/pkg/logging"
)

const usage = `Usage: splitease <command> [flags]

Commands:
  summary                       show the financial summary
  history                       list transactions, newest first
  add                           record an expense
  groups                        list groups with balances
  new-group                     create a group
  members       -group <id>     per-member balances for a group
  settle        -group -member  mark a member as settled
  remove-member -group -member  remove a member from a group
  delete-group  -group <id>     delete a group (keeps its transactions)
  clear-activity -group <id>    delete a group's transactions
  rename        <new name>      rename the current user everywhere
  stats                         profile statistics
  invite        <email>         invite a friend (simulated referral)
  notifications                 list referral notifications
  bills                         list recurring bills
  bill-add                      add a recurring bill
  bill-pay      <bill id>       pay a recurring bill
  wipe                          erase all data and start over
`

func main() {
	logging.Setup()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := storage.NewRepository(store)
	ledger := service.NewLedger(repo)

	ctx := context.Background()
	if err := run(ctx, cfg, repo, ledger, os.Args[1], os.Args[2:]); err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case "memory":
		return memory.New(), nil
	default:
		return sqlite.New(cfg.DBPath)
	}
}

func run(ctx context.Context, cfg *config.Config, repo *storage.Repository, ledger *service.Ledger, command string, args []string) error {
	switch command {
	case "summary":
		snap, err := ledger.Load(ctx)
		if err != nil {
			return err
		}
		printSummary(snap)
		return nil

	case "history":
		snap, err := ledger.Load(ctx)
		if err != nil {
			return err
		}
		printHistory(snap.Transactions)
		return nil

	case "add":
		return addExpense(ctx, ledger, args)

	case "groups":
		snap, err := ledger.Load(ctx)
		if err != nil {
			return err
		}
		for _, g := range snap.Groups {
			fmt.Printf("%-36s  %-20s  %d members  %s\n", g.ID, g.Name, g.MemberCount, balanceText(g.TotalBalance))
		}
		return nil

	case "new-group":
		fs := flag.NewFlagSet("new-group", flag.ExitOnError)
		name := fs.String("name", "", "group name")
		members := fs.String("members", "", "comma-separated member names")
		fs.Parse(args)
		snap, err := ledger.Load(ctx)
		if err != nil {
			return err
		}
		memberList := append([]string{snap.User.Name}, splitList(*members)...)
		_, err = ledger.AddGroup(ctx, models.Group{Name: *name, Members: memberList})
		return err

	case "members":
		fs := flag.NewFlagSet("members", flag.ExitOnError)
		groupID := fs.String("group", "", "group id")
		fs.Parse(args)
		balances, err := ledger.MemberBalances(ctx, *groupID)
		if err != nil {
			return err
		}
		for _, b := range balances {
			switch b.BalanceType {
			case models.BalanceOwedToYou:
				fmt.Printf("%-20s owes you $%.2f\n", b.Name, b.Balance)
			case models.BalanceYouOwe:
				fmt.Printf("%-20s you owe $%.2f\n", b.Name, b.Balance)
			default:
				fmt.Printf("%-20s all settled up\n", b.Name)
			}
		}
		return nil

	case "settle":
		fs := flag.NewFlagSet("settle", flag.ExitOnError)
		groupID := fs.String("group", "", "group id")
		member := fs.String("member", "", "member name")
		fs.Parse(args)
		_, err := ledger.MarkMemberAsSettled(ctx, *groupID, *member)
		return err

	case "remove-member":
		fs := flag.NewFlagSet("remove-member", flag.ExitOnError)
		groupID := fs.String("group", "", "group id")
		member := fs.String("member", "", "member name")
		fs.Parse(args)
		_, err := ledger.RemoveMemberFromGroup(ctx, *groupID, *member)
		return err

	case "delete-group":
		fs := flag.NewFlagSet("delete-group", flag.ExitOnError)
		groupID := fs.String("group", "", "group id")
		fs.Parse(args)
		_, err := ledger.DeleteGroup(ctx, *groupID)
		return err

	case "clear-activity":
		fs := flag.NewFlagSet("clear-activity", flag.ExitOnError)
		groupID := fs.String("group", "", "group id")
		fs.Parse(args)
		_, err := ledger.ClearGroupActivity(ctx, *groupID)
		return err

	case "rename":
		if len(args) == 0 {
			return fmt.Errorf("rename needs the new name")
		}
		_, err := ledger.RenameUser(ctx, strings.Join(args, " "))
		return err

	case "stats":
		stats, err := ledger.Statistics(ctx)
		if err != nil {
			return err
		}
		printStats(stats)
		return nil

	case "invite":
		if len(args) == 0 {
			return fmt.Errorf("invite needs an email address")
		}
		referrals := service.NewReferrals(repo, cfg.ReferralAcceptDelay)
		if err := referrals.Invite(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Invite sent to %s. You'll earn cashback when they join!\n", args[0])
		// Keep the process alive long enough for the acceptance to land.
		time.Sleep(cfg.ReferralAcceptDelay + 100*time.Millisecond)
		return nil

	case "notifications":
		referrals := service.NewReferrals(repo, cfg.ReferralAcceptDelay)
		notifications, err := referrals.Notifications(ctx)
		if err != nil {
			return err
		}
		for _, n := range notifications {
			marker := " "
			if n.Status == models.NotificationUnread {
				marker = "*"
			}
			fmt.Printf("%s %s  %s ($%.2f)\n", marker, n.Date.Format("Jan 2 15:04"), n.Message, n.Amount)
		}
		return nil

	case "bills":
		bills := service.NewBills(repo)
		list, err := bills.List(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, b := range list {
			fmt.Printf("%-36s  %-20s  $%.2f %s  %s\n", b.ID, b.ReceiverName, b.Amount, b.Frequency, service.DueStatus(b.NextPaymentDate, now))
		}
		return nil

	case "bill-add":
		return addBill(ctx, repo, args)

	case "bill-pay":
		if len(args) == 0 {
			return fmt.Errorf("bill-pay needs a bill id")
		}
		return service.NewBills(repo).Pay(ctx, args[0])

	case "wipe":
		_, err := ledger.ClearAllData(ctx)
		return err

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func addExpense(ctx context.Context, ledger *service.Ledger, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	desc := fs.String("desc", "", "description")
	amount := fs.Float64("amount", 0, "amount")
	paidBy := fs.String("paid-by", "", "payer name (defaults to you)")
	split := fs.String("split", "", "comma-separated split members")
	group := fs.String("group", "", "group name")
	settled := fs.Bool("settled", false, "record as already settled")
	fs.Parse(args)

	if *desc == "" {
		return fmt.Errorf("description is required")
	}
	if *amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	snap, err := ledger.Load(ctx)
	if err != nil {
		return err
	}

	payer := *paidBy
	if payer == "" {
		payer = snap.User.Name
	}
	splitBetween := splitList(*split)
	status := models.StatusPending
	if *settled || len(splitBetween) == 0 {
		// Personal expenses are settled by definition.
		status = models.StatusSettled
	}

	snap, err = ledger.AddTransaction(ctx, models.Transaction{
		Type:         models.TypeExpense,
		Description:  *desc,
		Amount:       amount,
		PaidBy:       payer,
		SplitBetween: splitBetween,
		Status:       status,
		GroupName:    *group,
	})
	if err != nil {
		return err
	}
	printSummary(snap)
	return nil
}

func addBill(ctx context.Context, repo *storage.Repository, args []string) error {
	fs := flag.NewFlagSet("bill-add", flag.ExitOnError)
	receiver := fs.String("receiver", "", "who gets paid")
	desc := fs.String("desc", "", "description")
	amount := fs.Float64("amount", 0, "amount")
	frequency := fs.String("frequency", "monthly", "weekly, monthly or yearly")
	fs.Parse(args)

	bill, err := service.NewBills(repo).Save(ctx, models.RecurringBill{
		ReceiverName: *receiver,
		Description:  *desc,
		Amount:       *amount,
		Frequency:    models.BillFrequency(*frequency),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s: $%.2f %s, next payment %s\n", bill.ReceiverName, bill.Amount, bill.Frequency, bill.NextPaymentDate.Format("Jan 2, 2006"))
	return nil
}

func printSummary(snap *service.Snapshot) {
	fmt.Printf("%s <%s>\n", snap.User.Name, snap.User.Email)
	fmt.Printf("Total balance:    %s\n", balanceText(snap.Summary.TotalBalance))
	fmt.Printf("You owe:          $%.2f\n", snap.Summary.YouOwe)
	fmt.Printf("You are owed:     $%.2f\n", snap.Summary.YouAreOwed)
	fmt.Printf("Monthly spending: $%.2f\n", snap.Summary.MonthlySpending)
}

func printHistory(transactions []models.Transaction) {
	for _, t := range transactions {
		amount := "      -  "
		if t.Amount != nil {
			amount = fmt.Sprintf("$%8.2f", *t.Amount)
		}
		group := t.GroupName
		if group == "" {
			group = "-"
		}
		fmt.Printf("%s  %s  %-10s  %-10s  %-20s  %s\n",
			t.Date.Format("2006-01-02"), amount, t.Type, t.Status, group, t.Description)
	}
}

func printStats(stats calculator.UserStatistics) {
	fmt.Printf("Groups:             %d (%d as admin)\n", stats.TotalGroups, stats.GroupsAsAdmin)
	fmt.Printf("Expenses:           %d (%d settled, %d pending)\n", stats.TotalTransactions, stats.SettledTransactions, stats.PendingTransactions)
	fmt.Printf("Total spent:        $%.2f (avg $%.2f)\n", stats.TotalAmountSpent, stats.AverageTransactionAmount)
	if stats.LargestTransaction != nil {
		fmt.Printf("Largest expense:    %s ($%.2f)\n", stats.LargestTransaction.Description, stats.LargestTransaction.Amount)
	}
	if stats.MostActiveGroup != nil {
		fmt.Printf("Most active group:  %s (%d transactions)\n", stats.MostActiveGroup.Name, stats.MostActiveGroup.TransactionCount)
	}
	fmt.Printf("This month:         $%.2f (last month $%.2f, trend %s)\n",
		stats.MonthlyStats.CurrentMonth, stats.MonthlyStats.LastMonth, stats.MonthlyStats.Trend)
}

func balanceText(balance float64) string {
	switch {
	case balance >= 0.01:
		return fmt.Sprintf("you are owed $%.2f", balance)
	case balance <= -0.01:
		return fmt.Sprintf("you owe $%.2f", -balance)
	default:
		return "all settled up"
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
