// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/emulator). This root
// package holds the sentinel errors and the three typed error kinds surfaced
// to the operator: ValidationError, ToolchainError and ConfigError.
package domain
