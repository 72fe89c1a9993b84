package cli

import "fmt"

// outlineError attaches the file an outline came from to a read or parse
// failure.
type outlineError struct {
	file string
	err  error
}

func (e *outlineError) Error() string {
	return fmt.Sprintf("%s: %v", e.file, e.err)
}

func (e *outlineError) Unwrap() error { return e.err }

func errOutline(file string, err error) error {
	return &outlineError{file: file, err: err}
}

type configExistsError struct {
	path string
}

func (e *configExistsError) Error() string {
	return fmt.Sprintf("%s already exists (use --force to overwrite)", e.path)
}

func errConfigExists(path string) error {
	return &configExistsError{path: path}
}
