// Package core provides the business logic for truck lookups: the in-memory
// table model, column-role resolution, record filtering, sessions, and the
// mapping of technical errors to user-facing messages. The package has no UI
// or I/O dependencies and can be used by any frontend.
//
// # Error Codes Reference
//
// Errors surfaced to users carry a support code. When users encounter an
// error, they can quote the code for faster diagnosis.
//
// Error codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: the file extension is not recognized
//	          Action: Upload a CSV or Excel (.xlsx) file
//	          Patterns: "unsupported file type"
//
//	FILE002 - Invalid delimited text: CSV/TXT could not be parsed
//	          Action: Ensure the file is comma-separated with a header row
//	          Patterns: "parse csv"
//
//	FILE003 - Invalid spreadsheet: workbook could not be opened
//	          Action: Re-save the file as .xlsx and upload again
//	          Patterns: "open workbook", "read sheet"
//
//	FILE004 - No file: no file was selected
//	          Action: Choose a CSV or Excel file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: the file has no header or data rows
//	          Action: Upload a file with a header row and at least one record
//	          Patterns: "empty file", "no data rows"
//
//	FILE006 - File too large: upload exceeds the size limit
//	          Action: Split the file or export a smaller range
//	          Patterns: "file too large", "request body too large"
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - No data: neither an upload nor the example dataset is loaded
//	          Action: Upload a file or enable the example data
//	          Patterns: "no data available"
//
//	DATA002 - Column not found: a mapped column is not in the table
//	          Action: Re-map the columns to ones present in your file
//	          Patterns: "column not found"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired: the loaded table is no longer held in memory
//	         Action: Upload the file again to start a new session
//	         Patterns: "session not found"
//
//	SES002 - Too many sessions: the server is at capacity
//	         Action: Try again in a few minutes
//	         Patterns: "too many active sessions"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection failed: the configured data source is unreachable
//	        Action: Try again in a few moments
//	        Patterns: "connection refused", "connection reset"
//
//	DB002 - Query timeout: loading from the data source took too long
//	        Action: Narrow the configured query or try again later
//	        Patterns: "context deadline exceeded", "timeout"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: an unexpected error occurred
//	         Action: Please try again
//
// Patterns are matched case-insensitively with strings.Contains; the first
// matching pattern wins, so specific patterns come before general ones.
package core
