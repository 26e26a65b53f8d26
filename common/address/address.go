// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 地址的计算与校验
package address

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/33cn/timedpot/common"
	"github.com/decred/base58"
	lru "github.com/hashicorp/golang-lru"
)

var addrSeed = []byte("address seed bytes for public key")

// PoolSeed 奖池地址的固定区分标识
const PoolSeed = "timedpot-pool"

var addressCache *lru.Cache
var poolAddressCache *lru.Cache
var checkAddressCache *lru.Cache

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

// ErrCheckChecksum 地址校验和错误
var ErrCheckChecksum = errors.New("Address Checksum error")

func init() {
	addressCache, _ = lru.New(10240)
	poolAddressCache, _ = lru.New(10240)
	checkAddressCache, _ = lru.New(10240)
}

func seedPubKey(parts ...[]byte) []byte {
	var bname [256]byte
	buf := append(bname[:0], addrSeed...)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	hash := common.Sha2Sum(buf)
	return hash[:]
}

//ExecPubKey 计算公钥
func ExecPubKey(name string) []byte {
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	return seedPubKey([]byte(name))
}

//ExecAddress 计算量有点大，做一次cache
func ExecAddress(name string) string {
	if value, ok := addressCache.Get(name); ok {
		return value.(string)
	}
	addrstr := PubKeyToAddress(ExecPubKey(name)).String()
	addressCache.Add(name, addrstr)
	return addrstr
}

//PoolAddress 由创建者地址和固定标识确定奖池地址，同一个创建者同时只能有一个奖池
func PoolAddress(authority string) string {
	if value, ok := poolAddressCache.Get(authority); ok {
		return value.(string)
	}
	addrstr := PubKeyToAddress(seedPubKey([]byte(PoolSeed), []byte(authority))).String()
	poolAddressCache.Add(authority, addrstr)
	return addrstr
}

//PubKeyToAddress 公钥转为地址
func PubKeyToAddress(in []byte) *Address {
	a := new(Address)
	a.Pubkey = make([]byte, len(in))
	copy(a.Pubkey[:], in[:])
	a.Version = 0
	a.Hash160 = common.Rimp160AfterSha256(in)
	return a
}

//CheckAddress 检查地址
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	_, e = decode(addr)
	checkAddressCache.Add(addr, e)
	return
}

func decode(hs string) ([]byte, error) {
	dec := base58.Decode(hs)
	if len(dec) == 0 {
		return nil, errors.New("Cannot decode b58 string '" + hs + "'")
	}
	if len(dec) != 25 {
		return nil, errors.New("Address length error " + hex.EncodeToString(dec))
	}
	sh := common.Sha2Sum(dec[0:21])
	if !bytes.Equal(sh[:4], dec[21:25]) {
		return nil, ErrCheckChecksum
	}
	return dec, nil
}

//NewAddrFromString new 地址
func NewAddrFromString(hs string) (*Address, error) {
	dec, err := decode(hs)
	if err != nil {
		return nil, err
	}
	a := new(Address)
	a.Version = dec[0]
	copy(a.Hash160[:], dec[1:21])
	a.Checksum = make([]byte, 4)
	copy(a.Checksum, dec[21:25])
	a.Enc58str = hs
	return a, nil
}

//Address 地址
type Address struct {
	Version  byte
	Hash160  [20]byte
	Checksum []byte
	Pubkey   []byte
	Enc58str string
}

func (a *Address) String() string {
	if a.Enc58str == "" {
		var ad [25]byte
		ad[0] = a.Version
		copy(ad[1:21], a.Hash160[:])
		if a.Checksum == nil {
			sh := common.Sha2Sum(ad[0:21])
			a.Checksum = make([]byte, 4)
			copy(a.Checksum, sh[:4])
		}
		copy(ad[21:25], a.Checksum[:])
		a.Enc58str = base58.Encode(ad[:])
	}
	return a.Enc58str
}
