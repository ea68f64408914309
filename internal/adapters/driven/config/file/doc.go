// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.deepscout.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable prompt templates with embedded defaults
//   - PromptWatcher: reloads the PromptStore when a template file changes
package file
