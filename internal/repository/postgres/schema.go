package postgres

import _ "embed"

// Schema is the DDL of the invitacion table. It is not applied automatically.
//
//go:embed schema.sql
var Schema string
