// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	apperrors "sqb/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
// Continuation lines, such as DSN hints, are indented under the first line.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(Mask(err.Error()), "\n", "\n  ")
	if apperrors.Is(err, apperrors.ConfigInvalid) {
		msg += "\n  Check config.json in the sqb config directory and the SQB_* environment variables."
	}
	return fmt.Sprintf("%s: %s", context, msg)
}
