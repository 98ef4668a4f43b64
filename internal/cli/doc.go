// Package cli provides the interactive bank console.
//
// It wires configuration, the credential engine, the account store and the
// ledger service, then runs the line menu: open or create an account, and
// once authenticated display info, deposit, withdraw, check the balance,
// change the password, delete the account or exit.
//
// The menu loop is started via App.Run(ctx), which blocks until the user
// exits or input ends. See App, NewApp and Run for details.
package cli
