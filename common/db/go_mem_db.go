// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sync"

	log "github.com/inconshreveable/log15"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/memdb"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB db
type GoMemDB struct {
	db *memdb.DB
	//batch 写入时加写锁，保证读不到写了一半的 batch
	lock sync.RWMutex
}

//NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	// memdb 不需要创建文件
	return &GoMemDB{
		db: memdb.New(comparer.DefaultComparer, 0),
	}, nil
}

//Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	v, err := db.db.Get(key)
	if err != nil {
		if err == errors.ErrNotFound {
			return nil, ErrNotFoundInDb
		}
		return nil, err
	}
	return cloneByte(v), nil
}

//Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	err := db.db.Put(key, value)
	if err != nil {
		mlog.Error("Set", "error", err)
		return err
	}
	return nil
}

//Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	err := db.db.Delete(key)
	if err != nil && err != errors.ErrNotFound {
		return err
	}
	return nil
}

//Close close
func (db *GoMemDB) Close() {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.db.Reset()
}

//Stats ...
func (db *GoMemDB) Stats() map[string]string {
	return map[string]string{
		"memdb.len":  intString(db.db.Len()),
		"memdb.size": intString(db.db.Size()),
	}
}

//Iterator 迭代器
func (db *GoMemDB) Iterator(start []byte, end []byte, reverse bool) Iterator {
	return &goLevelDBIt{db.db.NewIterator(makeRange(start, end)), reverse}
}

//NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type kv struct {
	k, v []byte
}

type memBatch struct {
	db     *GoMemDB
	writes []kv
	size   int
}

func (b *memBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), cloneByte(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), nil})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()
	for _, kv := range b.writes {
		if kv.v == nil {
			if err := b.db.db.Delete(kv.k); err != nil && err != errors.ErrNotFound {
				return err
			}
			continue
		}
		if err := b.db.db.Put(kv.k, kv.v); err != nil {
			return err
		}
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
