package condition

import (
	"errors"
	"fmt"
)

// Default validation limits, guarding against pathological input
const (
	// DefaultMaxConditionLength is the maximum condition length in bytes (64KB)
	DefaultMaxConditionLength = 64 * 1024

	// DefaultMaxTokens is the maximum number of tokens in a condition
	DefaultMaxTokens = 1000

	// DefaultMaxDepth is the maximum bracket nesting depth
	DefaultMaxDepth = 100

	// DefaultMaxColumnNameLength is the maximum length for a column name
	DefaultMaxColumnNameLength = 256
)

var (
	// ErrConditionTooLong is returned when a condition exceeds MaxConditionLength
	ErrConditionTooLong = errors.New("condition too long")

	// ErrTooManyTokens is returned when a condition has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in condition")

	// ErrNestingTooDeep is returned when bracket nesting exceeds MaxDepth
	ErrNestingTooDeep = errors.New("bracket nesting too deep")

	// ErrColumnNameTooLong is returned when a column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")
)

// Limits bounds the size of conditions accepted by a Parser.
// A zero field disables the corresponding check.
type Limits struct {
	MaxConditionLength  int `yaml:"max_condition_length"`
	MaxTokens           int `yaml:"max_tokens"`
	MaxDepth            int `yaml:"max_depth"`
	MaxColumnNameLength int `yaml:"max_column_name_length"`
}

// DefaultLimits returns the default validation limits.
func DefaultLimits() Limits {
	return Limits{
		MaxConditionLength:  DefaultMaxConditionLength,
		MaxTokens:           DefaultMaxTokens,
		MaxDepth:            DefaultMaxDepth,
		MaxColumnNameLength: DefaultMaxColumnNameLength,
	}
}

// Validate checks that no limit is negative.
func (l Limits) Validate() error {
	if l.MaxConditionLength < 0 || l.MaxTokens < 0 || l.MaxDepth < 0 || l.MaxColumnNameLength < 0 {
		return fmt.Errorf("limits must be non-negative: %+v", l)
	}
	return nil
}

// validateCondition checks the raw condition length
func (l Limits) validateCondition(cond string) error {
	if l.MaxConditionLength > 0 && len(cond) > l.MaxConditionLength {
		return parseErrorf(-1, "", ErrConditionTooLong, "%d bytes (max %d)", len(cond), l.MaxConditionLength)
	}
	return nil
}

// validateTokens checks the token count
func (l Limits) validateTokens(tokens []string) error {
	if l.MaxTokens > 0 && len(tokens) > l.MaxTokens {
		return parseErrorf(-1, "", ErrTooManyTokens, "%d tokens (max %d)", len(tokens), l.MaxTokens)
	}
	return nil
}

// validateColumnName checks a column name's length
func (l Limits) validateColumnName(pos int, name string) error {
	if l.MaxColumnNameLength > 0 && len(name) > l.MaxColumnNameLength {
		return parseErrorf(pos, "", ErrColumnNameTooLong, "%d chars (max %d)", len(name), l.MaxColumnNameLength)
	}
	return nil
}

// depthCounter tracks bracket nesting depth
type depthCounter struct {
	depth    int
	maxDepth int
}

// enter increments depth and returns error if limit exceeded
func (c *depthCounter) enter(pos int) error {
	c.depth++
	if c.maxDepth > 0 && c.depth > c.maxDepth {
		return parseErrorf(pos, "[", ErrNestingTooDeep, "%d (max %d)", c.depth, c.maxDepth)
	}
	return nil
}

// exit decrements depth
func (c *depthCounter) exit() {
	c.depth--
}
