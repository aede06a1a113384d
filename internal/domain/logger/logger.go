// Package logger holds the program logger.
package logger

import "grabarr/internal/utils/logging"

// Pl holds the global *ProgramLogger variable.
var Pl = new(logging.ProgramLogger)
