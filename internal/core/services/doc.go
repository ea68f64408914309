// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The deep-search pipeline, the report synthesiser, the query expander
// and the conversation state manager live here. Services are pure Go
// with no CGO dependencies.
package services
