package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "messaging.messages_per_tick")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateMessaging()...)
	errors = append(errors, c.validateHost()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateMessaging checks the messaging configuration
func (c *Config) validateMessaging() []ValidationError {
	var errors []ValidationError

	if c.Messaging.MessagesPerTick < 1 {
		errors = append(errors, ValidationError{
			Field:   "messaging.messages_per_tick",
			Value:   c.Messaging.MessagesPerTick,
			Message: "must be at least 1",
		})
	}

	if c.Messaging.IDCeiling < 2 {
		errors = append(errors, ValidationError{
			Field:   "messaging.id_ceiling",
			Value:   c.Messaging.IDCeiling,
			Message: "must be at least 2 (id 0 is reserved, ids wrap to 1)",
		})
	}

	return errors
}

// validateHost checks the host scheduler configuration
func (c *Config) validateHost() []ValidationError {
	var errors []ValidationError

	if c.Host.TickIntervalMs < 1 {
		errors = append(errors, ValidationError{
			Field:   "host.tick_interval_ms",
			Value:   c.Host.TickIntervalMs,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateLogging checks the logging configuration
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative (0 disables rotation)",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
