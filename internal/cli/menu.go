package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/gophbank/internal/common"
	"github.com/dmitrijs2005/gophbank/internal/models"
	"github.com/dmitrijs2005/gophbank/internal/services"
	"github.com/shopspring/decimal"
)

// action is one menu entry. It receives the current session (nil when
// nobody is logged in) and returns the session to continue with.
type action func(ctx context.Context, s *services.Session) (*services.Session, error)

var errExit = errors.New("exit")

const (
	welcomeMenu = "Welcome to the Bank System\n" +
		"\n1: Open existing account." +
		"\n2: Create new account.\n"

	accountMenu = "Choose an action of the following options.\n" +
		"\n1: Display Account Information." +
		"\n2: Deposit." +
		"\n3: Withdraw." +
		"\n4: Check Balance." +
		"\n5: Change Password." +
		"\n6: Delete Account." +
		"\n7: Exit.\n"
)

// Run drives the menu until the user exits or input ends. Only errors that
// mean the account store could not be persisted (or input failed) are
// returned; wrong passwords, unknown users and bad amounts are reported to
// the user and the loop continues.
func (a *App) Run(ctx context.Context) error {
	var session *services.Session

	for {
		var (
			next *services.Session
			err  error
		)

		if !session.Active() {
			fmt.Fprint(a.out, welcomeMenu)
			next, err = a.menuInput(ctx, session, a.openAccount, a.createAccount)
		} else {
			fmt.Fprint(a.out, accountMenu)
			next, err = a.menuInput(ctx, session,
				a.displayUserInfo,
				a.deposit,
				a.withdraw,
				a.checkBalance,
				a.changePassword,
				a.deleteAccount,
				a.exit,
			)
		}

		switch {
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			a.ledger.Logout(ctx, session)
			return nil
		case err != nil:
			a.log.Error(ctx, "fatal error, stopping", "error", err)
			return err
		}

		session = next
		fmt.Fprintln(a.out)
	}
}

// menuInput reads a 1-based choice until it is valid, then runs the action.
func (a *App) menuInput(ctx context.Context, s *services.Session, options ...action) (*services.Session, error) {
	for {
		line, err := getSimpleText(a.reader, "Enter: ", a.out)
		if err != nil {
			return s, err
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(a.out, "Please enter a valid integer.")
			continue
		}
		choice--

		if choice >= 0 && choice < len(options) {
			return options[choice](ctx, s)
		}
		fmt.Fprintln(a.out, "Please enter a valid choice.")
	}
}

// passwordPrompt asks for the password, announcing each rejected attempt.
func (a *App) passwordPrompt() services.PasswordPrompt {
	return func(attempt int) ([]byte, error) {
		if attempt > 0 {
			fmt.Fprintln(a.out, "Incorrect password.")
		}
		return getPassword(a.out, "Please enter the password: ")
	}
}

func (a *App) tooManyAttempts() {
	fmt.Fprintln(a.out, "Incorrect password.")
	fmt.Fprintln(a.out, "You have entered too many incorrect passwords.")
}

func (a *App) format(amount decimal.Decimal) string {
	return FormatMoney(amount, a.config.Currency)
}

func (a *App) openAccount(ctx context.Context, _ *services.Session) (*services.Session, error) {
	userName, err := getSimpleText(a.reader, "Please enter the user name of the account: ", a.out)
	if err != nil {
		return nil, err
	}

	s, err := a.ledger.Open(ctx, userName, a.passwordPrompt())
	switch {
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "Please enter an existing account.")
		return nil, nil
	case errors.Is(err, common.ErrorUnauthorized):
		a.tooManyAttempts()
		return nil, nil
	case err != nil:
		return nil, err
	}
	return s, nil
}

func (a *App) createAccount(ctx context.Context, _ *services.Session) (*services.Session, error) {
	userName, err := getSimpleText(a.reader, "Enter a new user name for the account: ", a.out)
	if err != nil {
		return nil, err
	}
	if userName == "" {
		fmt.Fprintln(a.out, "The user name must not be empty.")
		return nil, nil
	}
	if a.ledger.Exists(userName) {
		fmt.Fprintln(a.out, "This user name already exists.")
		return nil, nil
	}

	password, err := getPassword(a.out, "Enter a new password for the account: ")
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	s, err := a.ledger.Register(ctx, userName, password)
	if errors.Is(err, common.ErrorAlreadyExists) {
		fmt.Fprintln(a.out, "This user name already exists.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) displayUserInfo(_ context.Context, s *services.Session) (*services.Session, error) {
	info, err := a.ledger.Info(s)
	if err != nil {
		return a.sessionLost(s, err)
	}

	fmt.Fprintf(a.out, "User Name: %s\n", info.Username)
	if last := info.LastTransaction; last != nil {
		kind := "Deposit"
		if last.Kind == models.TransactionWithdrawal {
			kind = "Withdrawal"
		}
		fmt.Fprintf(a.out, "Last Transaction: %s, Amount: %s\n", kind, a.format(last.Amount))
	}
	return s, nil
}

func (a *App) deposit(ctx context.Context, s *services.Session) (*services.Session, error) {
	amount, ok, err := a.readAmount("Please enter any amount to deposit: ")
	if err != nil || !ok {
		return s, err
	}

	_, err = a.ledger.Deposit(ctx, s, amount)
	switch {
	case errors.Is(err, common.ErrorInvalidAmount):
		fmt.Fprintln(a.out, "The amount must be positive.")
		return s, nil
	case err != nil:
		return a.sessionLost(s, err)
	}

	fmt.Fprintf(a.out, "You have successfully deposited %s\n", a.format(amount))
	return s, nil
}

func (a *App) withdraw(ctx context.Context, s *services.Session) (*services.Session, error) {
	amount, ok, err := a.readAmount("Please enter any amount to withdraw: ")
	if err != nil || !ok {
		return s, err
	}

	balance, err := a.ledger.Withdraw(ctx, s, amount)
	switch {
	case errors.Is(err, common.ErrorInvalidAmount):
		fmt.Fprintln(a.out, "The amount must be positive.")
		return s, nil
	case errors.Is(err, common.ErrorInsufficientFunds):
		fmt.Fprintf(a.out, "Insufficient funds. Current Balance: %s\n", a.format(balance))
		return s, nil
	case err != nil:
		return a.sessionLost(s, err)
	}

	fmt.Fprintf(a.out, "You have successfully withdrawn %s\n", a.format(amount))
	return s, nil
}

func (a *App) checkBalance(_ context.Context, s *services.Session) (*services.Session, error) {
	balance, err := a.ledger.Balance(s)
	if err != nil {
		return a.sessionLost(s, err)
	}
	fmt.Fprintf(a.out, "Current Balance: %s\n", a.format(balance))
	return s, nil
}

func (a *App) changePassword(ctx context.Context, s *services.Session) (*services.Session, error) {
	fmt.Fprintln(a.out, "To change the password please enter the current password.")

	err := a.ledger.ChangePassword(ctx, s, a.passwordPrompt(), func() ([]byte, error) {
		return getPassword(a.out, "Please enter the new password: ")
	})
	if errors.Is(err, common.ErrorUnauthorized) {
		a.tooManyAttempts()
		return nil, nil
	}
	if err != nil {
		return a.sessionLost(s, err)
	}

	fmt.Fprintln(a.out, "Your password has been changed.")
	return s, nil
}

func (a *App) deleteAccount(ctx context.Context, s *services.Session) (*services.Session, error) {
	fmt.Fprintln(a.out, "Please enter password to delete account.")

	err := a.ledger.DeleteAccount(ctx, s, a.passwordPrompt())
	if errors.Is(err, common.ErrorUnauthorized) {
		a.tooManyAttempts()
		return nil, nil
	}
	if err != nil {
		return a.sessionLost(s, err)
	}

	fmt.Fprintf(a.out, "You have successfully deleted account '%s'.\n", s.Username)
	return nil, nil
}

func (a *App) exit(_ context.Context, s *services.Session) (*services.Session, error) {
	return s, errExit
}

// sessionLost turns "account vanished" into a logout; other errors are fatal.
func (a *App) sessionLost(s *services.Session, err error) (*services.Session, error) {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorUnauthorized) {
		fmt.Fprintln(a.out, "The session has ended.")
		return nil, nil
	}
	return s, err
}

// readAmount prompts for a decimal amount. ok is false when the input was not
// a number or not a whole count of the currency's minor units; the user has
// already been told.
func (a *App) readAmount(prompt string) (amount decimal.Decimal, ok bool, err error) {
	line, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err = decimal.NewFromString(line)
	if err != nil || !ValidAmount(amount, a.config.Currency) {
		fmt.Fprintln(a.out, "Please enter a valid amount.")
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}
