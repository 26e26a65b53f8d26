// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrNotFound           = errors.New("ErrNotFound")
	ErrEmpty              = errors.New("ErrEmpty")
	ErrDecode             = errors.New("ErrDecode")
	ErrAmount             = errors.New("ErrAmount")
	ErrNoBalance          = errors.New("ErrNoBalance")
	ErrOverflow           = errors.New("ErrOverflow")
	ErrSendSameToRecv     = errors.New("ErrSendSameToRecv")
	ErrInvalidAddress     = errors.New("ErrInvalidAddress")
	ErrExecNameNotAllow   = errors.New("ErrExecNameNotAllow")
	ErrSymbolNameNotAllow = errors.New("ErrSymbolNameNotAllow")
	ErrInvalidParam       = errors.New("ErrInvalidParam")
	ErrStoreDriver        = errors.New("ErrStoreDriver")
)
