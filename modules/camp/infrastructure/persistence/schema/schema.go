// Package schema ships the DDL for the camp tables.
package schema

import _ "embed"

//go:embed camp-schema.sql
var SQL string
