// Package sqlinline is the single home for the SQL text the repositories
// execute. Every statement constant starts with a `--sql <uuid>` marker so
// queries can be matched against slow-query logs and audits; the sqllint tool
// enforces the marker on any constant that looks like SQL.
package sqlinline
