// SPDX-License-Identifier: EPL-2.0

package control

import "errors"

var (
	ErrQueueFull = errors.New("queue full")
)
