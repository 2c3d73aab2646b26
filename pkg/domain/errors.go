package domain

import "errors"

// ErrMachineNotFound is returned when a loader has no machine under the requested ID.
var ErrMachineNotFound = errors.New("machine not found")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")
