package services

import "errors"

// ErrValidation marks user-correctable input problems. Handlers translate
// it to a 400; it never crosses the boundary as a panic or bare string.
var ErrValidation = errors.New("validation failed")
