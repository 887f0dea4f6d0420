// SPDX-License-Identifier: EPL-2.0

package units

import "errors"

var (
	ErrUnknownKind = errors.New("unknown unit kind")
	ErrMissingClip = errors.New("player needs a clip")
)
