// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db kv 存储的统一接口，以及 goleveldb、badger、memdb 三种实现
package db

import (
	"errors"
	"sort"
	"strconv"

	pkgerr "github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

//ErrNotFoundInDb error
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

//ErrUnknownBackend 未注册的数据库类型
var ErrUnknownBackend = errors.New("ErrUnknownBackend")

//KV kv
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

//KVDB 带有查询功能的 kv 接口，执行器通过它访问数据
type KVDB interface {
	KV
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
	PrefixCount(prefix []byte) int64
}

//IteratorDB 迭代
type IteratorDB interface {
	//end == nil 时按 start 前缀迭代，否则迭代 [start, end)
	Iterator(start []byte, end []byte, reserve bool) Iterator
}

//DB db
type DB interface {
	KV
	IteratorDB
	Delete([]byte) error
	Close()
	NewBatch(sync bool) Batch
	Stats() map[string]string
}

//Batch 批量写，Write 要么全部成功，要么全部失败
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

//Iterator 迭代器
type Iterator interface {
	Rewind() bool
	Next() bool
	Valid() bool
	Seek(key []byte) bool
	Key() []byte
	Value() []byte
	ValueCopy() []byte
	Error() error
	Close()
}

//-----------------------------------------------------------------------------

//const
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

//Backends 已经注册的数据库类型
func Backends() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//NewDB new
func NewDB(name string, backend string, dir string, cache int32) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, pkgerr.Wrap(ErrUnknownBackend, backend)
	}
	db, err := creator(name, dir, int(cache))
	if err != nil {
		return nil, pkgerr.Wrapf(err, "open %s db %s", backend, name)
	}
	return db, nil
}

func cloneByte(v []byte) []byte {
	if v == nil {
		return nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value
}

func makeRange(start, end []byte) *util.Range {
	if end == nil {
		return util.BytesPrefix(start)
	}
	return &util.Range{Start: start, Limit: end}
}

func intString(i int) string {
	return strconv.Itoa(i)
}
