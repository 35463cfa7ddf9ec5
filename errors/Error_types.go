package errors

var (
	ErrUnknown                = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument        = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrProcessing             = New(ERR_PROCESSING, "error processing")
	ErrConfiguration          = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled        = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrBlockNotFound          = New(ERR_BLOCK_NOT_FOUND, "block not found")
	ErrBlockInvalid           = New(ERR_BLOCK_INVALID, "block invalid")
	ErrBlockExists            = New(ERR_BLOCK_EXISTS, "block exists")
	ErrServiceUnavailable     = New(ERR_SERVICE_UNAVAILABLE, "service unavailable")
	ErrServiceError           = New(ERR_SERVICE_ERROR, "service error")
	ErrStorageUnavailable     = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError           = New(ERR_STORAGE_ERROR, "storage error")
	ErrBlockInvalidAlgo       = New(ERR_BLOCK_INVALID_ALGO, "block algorithm not supported")
	ErrBlockInvalidDifficulty = New(ERR_BLOCK_INVALID_DIFFICULTY, "block target does not meet difficulty")
	ErrBlockInvalidSolution   = New(ERR_BLOCK_INVALID_SOLUTION, "block proof-of-work solution invalid")
	ErrMiningStaleContext     = New(ERR_MINING_STALE_CONTEXT, "mining context is stale")
	ErrMiningDuplicateSubmit  = New(ERR_MINING_DUPLICATE_SUBMIT, "solution already submitted")
	ErrMiningSolutionRejected = New(ERR_MINING_SOLUTION_REJECTED, "solution rejected")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewBlockNotFoundError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_NOT_FOUND, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
func NewBlockExistsError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_EXISTS, message, params...)
}
func NewServiceUnavailableError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_UNAVAILABLE, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
func NewBlockInvalidAlgoError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID_ALGO, message, params...)
}
func NewBlockInvalidSolutionError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID_SOLUTION, message, params...)
}
func NewMiningStaleContextError(message string, params ...interface{}) error {
	return New(ERR_MINING_STALE_CONTEXT, message, params...)
}
func NewMiningDuplicateSubmitError(message string, params ...interface{}) error {
	return New(ERR_MINING_DUPLICATE_SUBMIT, message, params...)
}
func NewMiningSolutionRejectedError(message string, params ...interface{}) error {
	return New(ERR_MINING_SOLUTION_REJECTED, message, params...)
}
