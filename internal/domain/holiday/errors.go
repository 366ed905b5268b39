package holiday

import "errors"

var ErrYearNotAvailable = errors.New("holiday calendar is not available for the requested year")
