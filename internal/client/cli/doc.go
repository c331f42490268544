// Package cli provides the interactive TesteMatch command-line client.
//
// It wires configuration, local storage, the API client, the session store
// and the application services into an interactive REPL. On startup a
// persisted session is restored when a valid token record exists; otherwise
// the user starts anonymous.
//
// Commands that touch account data (upload, history, dashboard, credits and
// friends) require a signed-in session. Running one while anonymous prompts
// for a login and, on success, replays the original command. Public data
// (pricing plans, shared analyses, account activation) works without login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
