// SPDX-License-Identifier: EPL-2.0

package patch

import "errors"

var (
	ErrInvalidPatch  = errors.New("invalid patch")
	ErrDuplicateName = errors.New("duplicate unit name")
	ErrReservedName  = errors.New("reserved unit name")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrBadEndpoint   = errors.New("bad endpoint")
)
