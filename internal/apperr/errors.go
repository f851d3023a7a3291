package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " " + e.ID + " not found"
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// RunError ties a failure to the stored run that recorded it.
type RunError struct {
	RunID string
	Err   error
}

func (e *RunError) Error() string {
	return "run " + e.RunID + ": " + e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func NewRunError(runID string, err error) *RunError {
	return &RunError{RunID: runID, Err: err}
}
