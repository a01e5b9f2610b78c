package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 102
	ErrCodeInvalidDateFormat    ErrorCode = 103
	ErrCodeInvalidTimeWindow    ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeFileOpenFailed        ErrorCode = 203
	ErrCodeFileReadFailed        ErrorCode = 204

	// Import errors (300-399)
	ErrCodeImportFailed   ErrorCode = 300
	ErrCodeMissingColumns ErrorCode = 301
	ErrCodeEmptyDataset   ErrorCode = 302

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError  ErrorCode = 600
	ErrCodeBacktestNoDatasource ErrorCode = 601
	ErrCodeBacktestNoResultsDir ErrorCode = 602

	// Export errors (700-799)
	ErrCodeExportFailed     ErrorCode = 700
	ErrCodeStoreInitFailed  ErrorCode = 701
	ErrCodeStoreWriteFailed ErrorCode = 702

	// Sweep errors (800-899)
	ErrCodeSweepInvalidRange ErrorCode = 800
	ErrCodeSweepNoResults    ErrorCode = 801
	ErrCodeSweepCancelled    ErrorCode = 802
)
