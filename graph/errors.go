// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	ErrUnknownNode      = errors.New("unknown node")
	ErrDuplicateNode    = errors.New("node already exists")
	ErrInvalidNode      = errors.New("invalid node")
	ErrPortOutOfRange   = errors.New("port out of range")
	ErrCycle            = errors.New("connection would create a cycle")
	ErrNotConnected     = errors.New("endpoints are not connected")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnknownOp        = errors.New("unknown command")
)
