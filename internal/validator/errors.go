package validator

import "errors"

var errNilCell = errors.New("grid has an empty cell")
