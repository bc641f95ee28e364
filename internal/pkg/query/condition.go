package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	// and the number of parameters returned must equal the number of
	// indexes consumed.
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(paramIndex int) string {
	return fmt.Sprintf("p%d", paramIndex)
}

// comparison implements binary comparisons (field <op> value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, name)
	return sql, map[string]interface{}{name: c.value}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Lt creates a strict less-than condition.
// Example: Lt("expires_at", cutoff) generates "expires_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<", value: value}
}

// Gte creates a greater-than-or-equal condition.
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("processed_at") generates "processed_at IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("image_src") generates "image_src IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}

// NotEmpty matches rows where a string column is neither NULL nor "".
// Example: NotEmpty("title") generates "(title IS NOT NULL AND title != ”)"
func NotEmpty(field string) Condition {
	return &notEmptyCondition{field: field}
}

type notEmptyCondition struct {
	field string
}

func (c *notEmptyCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("(%s IS NOT NULL AND %s != '')", c.field, c.field)
	return sql, map[string]interface{}{}
}

// ContainsFold matches rows where the column contains value as a
// case-insensitive substring. NULL columns never match.
// Example: ContainsFold("title", "Widget") generates
// "STRPOS(LOWER(IFNULL(title, ”)), @p0) > 0" with p0 = "widget".
func ContainsFold(field, value string) Condition {
	return &containsFoldCondition{field: field, value: strings.ToLower(value)}
}

type containsFoldCondition struct {
	field string
	value string
}

func (c *containsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("STRPOS(LOWER(IFNULL(%s, '')), @%s) > 0", c.field, name)
	return sql, map[string]interface{}{name: c.value}
}

// EqFold is a case-insensitive equality comparison.
// Example: EqFold("product_type", "Tools") generates "LOWER(product_type) = @p0"
// with p0 = "tools".
func EqFold(field, value string) Condition {
	return &comparison{field: fmt.Sprintf("LOWER(%s)", field), op: "=", value: strings.ToLower(value)}
}

// Between matches an inclusive range. The field may be an expression such
// as SafeCastFloat64("variant_price").
// Example: Between("price", 1, 5) generates "price BETWEEN @p0 AND @p1"
func Between(field string, low, high interface{}) Condition {
	return &betweenCondition{field: field, low: low, high: high}
}

type betweenCondition struct {
	field string
	low   interface{}
	high  interface{}
}

func (c *betweenCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	lowName := paramName(paramIndex)
	highName := paramName(paramIndex + 1)
	sql := fmt.Sprintf("%s BETWEEN @%s AND @%s", c.field, lowName, highName)
	return sql, map[string]interface{}{lowName: c.low, highName: c.high}
}

// Or combines conditions with OR, wrapped in parentheses.
func Or(conditions ...Condition) Condition {
	return &groupCondition{op: " OR ", conditions: conditions}
}

// And combines conditions with AND, wrapped in parentheses. Useful inside Or.
func And(conditions ...Condition) Condition {
	return &groupCondition{op: " AND ", conditions: conditions}
}

type groupCondition struct {
	op         string
	conditions []Condition
}

func (c *groupCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	parts := make([]string, 0, len(c.conditions))
	index := paramIndex
	for _, cond := range c.conditions {
		fragment, condParams := cond.SQL(index)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		index += len(condParams)
	}
	return "(" + strings.Join(parts, c.op) + ")", params
}
