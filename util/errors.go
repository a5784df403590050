package util

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrFileTooLarge    = &Error{Message: "file is too large for this instance"}
	ErrNotAFile        = &Error{Message: "path is not a regular file"}
	ErrDuplicateOutput = &Error{Message: "pages share the same output file"}
)
