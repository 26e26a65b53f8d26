// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package common 地址计算用到的哈希函数和网络时间校准
package common

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// CopyBytes 复制 b, nil 返回 nil
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}

//Sha256 加密
func Sha256(b []byte) []byte {
	data := sha256.Sum256(b)
	return data[:]
}

// Sha2Sum Returns hash: SHA256( SHA256( data ) )
func Sha2Sum(b []byte) (out [32]byte) {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Rimp160 Returns hash: RIMP160( data )
func Rimp160(b []byte) []byte {
	rim := ripemd160.New()
	rim.Write(b)
	return rim.Sum(nil)
}

// Rimp160AfterSha256 Returns hash: RIMP160( SHA256( data ) )
func Rimp160AfterSha256(b []byte) (out [20]byte) {
	sha := sha256.Sum256(b)
	copy(out[:], Rimp160(sha[:]))
	return
}
