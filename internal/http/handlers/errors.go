// Package handlers defines the HTTP-layer error messages used across all API
// endpoints.
//
// The constants below are the exact strings emitted inside the ErrorResponse
// envelope. They are part of the API contract: the companion web UI matches on
// them, so changing one is a breaking change.
package handlers

const (
	// MsgNotFound is returned for any unmatched route or verb.
	MsgNotFound = "Not found"
	// MsgInvalidID is returned when the {id} path segment is not an integer.
	MsgInvalidID = "Invalid contact id"
	// MsgContactNotFound is returned when no contact carries the requested id.
	MsgContactNotFound = "Contact not found"
	// MsgNameRequired is returned when a create request lacks a non-blank name.
	MsgNameRequired = "Name is required"
	// MsgInvalidJSON is returned when a request body is not well-formed JSON.
	MsgInvalidJSON = "Invalid JSON body"
	// MsgMissingFile is returned when an import request carries no body.
	MsgMissingFile = "Missing file content"
	// MsgInvalidWorkbook is returned when an uploaded file is not a workbook.
	MsgInvalidWorkbook = "Invalid Excel file"
	// MsgWrongHeaders is returned when a workbook's header row does not match
	// the contact columns.
	MsgWrongHeaders = "Excel sheet must contain the correct headers"
	// MsgExportFailed is returned when workbook generation fails.
	MsgExportFailed = "Failed to export contacts"
	// MsgInternal is returned for unexpected store failures.
	MsgInternal = "internal server error"
)
