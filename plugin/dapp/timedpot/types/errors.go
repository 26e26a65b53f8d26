// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrPoolAlreadyExists = errors.New("ErrPoolAlreadyExists")
	ErrInvalidDuration   = errors.New("ErrInvalidDuration")
	ErrPoolNotFound      = errors.New("ErrPoolNotFound")
	ErrGameClosed        = errors.New("ErrGameClosed")
	ErrInvalidAmount     = errors.New("ErrInvalidAmount")
	ErrGameEnded         = errors.New("ErrGameEnded")
	ErrGameNotEnded      = errors.New("ErrGameNotEnded")
	ErrInvalidWinner     = errors.New("ErrInvalidWinner")
	ErrOverflow          = errors.New("ErrOverflow")
	ErrEmptyPot          = errors.New("ErrEmptyPot")
	ErrInvalidAuthority  = errors.New("ErrInvalidAuthority")
	ErrFaucetDisabled    = errors.New("ErrFaucetDisabled")
	ErrFaucetLimit       = errors.New("ErrFaucetLimit")
)
