// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"fmt"
	"path"

	"github.com/dgraph-io/badger"
	log "github.com/inconshreveable/log15"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

//GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

// badger 的日志转到 log15
type badgerLogger struct {
	log.Logger
}

func (l badgerLogger) Errorf(format string, v ...interface{}) {
	l.Error(fmt.Sprintf(format, v...))
}

func (l badgerLogger) Warningf(format string, v ...interface{}) {
	l.Warn(fmt.Sprintf(format, v...))
}

func (l badgerLogger) Infof(format string, v ...interface{}) {
	l.Debug(fmt.Sprintf(format, v...))
}

func (l badgerLogger) Debugf(format string, v ...interface{}) {
	l.Debug(fmt.Sprintf(format, v...))
}

//NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	dbPath := path.Join(dir, name+".db")
	opts := badger.DefaultOptions(dbPath).WithLogger(badgerLogger{blog})
	db, err := badger.Open(opts)
	if err != nil {
		blog.Error("NewGoBadgerDB", "error", err)
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

//Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		blog.Error("Get", "error", err)
		return nil, err
	}
	return val, nil
}

//Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cloneByte(key), cloneByte(value))
	})
	if err != nil {
		blog.Error("Set", "error", err)
		return err
	}
	return nil
}

//Delete 删除
func (db *GoBadgerDB) Delete(key []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(cloneByte(key))
	})
	if err != nil {
		blog.Error("Delete", "error", err)
		return err
	}
	return nil
}

//DB db
func (db *GoBadgerDB) DB() *badger.DB {
	return db.db
}

//Close 关闭
func (db *GoBadgerDB) Close() {
	err := db.db.Close()
	if err != nil {
		blog.Error("Close", "error", err)
	}
}

//Stats ...
func (db *GoBadgerDB) Stats() map[string]string {
	lsm, vlog := db.db.Size()
	return map[string]string{
		"badger.lsm":  intString(int(lsm)),
		"badger.vlog": intString(int(vlog)),
	}
}

//Iterator 迭代器
func (db *GoBadgerDB) Iterator(start []byte, end []byte, reverse bool) Iterator {
	txn := db.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	rng := makeRange(start, end)
	return &goBadgerDBIt{Iterator: txn.NewIterator(opts), txn: txn, rng: rng, reverse: reverse}
}

type goBadgerDBIt struct {
	*badger.Iterator
	txn     *badger.Txn
	rng     *util.Range
	reverse bool
	err     error
}

//Rewind 指向第一个(反向时为最后一个)在范围内的 key
func (it *goBadgerDBIt) Rewind() bool {
	if !it.reverse {
		it.Iterator.Seek(it.rng.Start)
		return it.Valid()
	}
	if it.rng.Limit == nil {
		it.Iterator.Rewind()
		return it.Valid()
	}
	it.Iterator.Seek(it.rng.Limit)
	//Limit 本身不在范围内
	if it.Iterator.Valid() && bytes.Equal(it.Iterator.Item().Key(), it.rng.Limit) {
		it.Iterator.Next()
	}
	return it.Valid()
}

//Seek 正向时定位到第一个 >= key 的位置，反向时定位到最后一个 <= key 的位置
func (it *goBadgerDBIt) Seek(key []byte) bool {
	it.Iterator.Seek(key)
	return it.Valid()
}

//Next next
func (it *goBadgerDBIt) Next() bool {
	it.Iterator.Next()
	return it.Valid()
}

//Valid 是否在范围内
func (it *goBadgerDBIt) Valid() bool {
	if !it.Iterator.Valid() {
		return false
	}
	key := it.Iterator.Item().Key()
	if it.rng.Start != nil && bytes.Compare(key, it.rng.Start) < 0 {
		return false
	}
	if it.rng.Limit != nil && bytes.Compare(key, it.rng.Limit) >= 0 {
		return false
	}
	return true
}

func (it *goBadgerDBIt) Key() []byte {
	return it.Iterator.Item().Key()
}

func (it *goBadgerDBIt) Value() []byte {
	value, err := it.Iterator.Item().ValueCopy(nil)
	if err != nil {
		it.err = err
	}
	return value
}

func (it *goBadgerDBIt) ValueCopy() []byte {
	return it.Value()
}

func (it *goBadgerDBIt) Error() error {
	return it.err
}

//Close 关闭迭代器以及只读事务
func (it *goBadgerDBIt) Close() {
	it.Iterator.Close()
	it.txn.Discard()
}

//NewBatch batch 对应一个 badger 写事务
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &goBadgerDBBatch{db: db}
}

type goBadgerDBBatch struct {
	db     *GoBadgerDB
	writes []kv
	size   int
}

func (mBatch *goBadgerDBBatch) Set(key, value []byte) {
	mBatch.writes = append(mBatch.writes, kv{cloneByte(key), cloneByte(value)})
	mBatch.size += len(value)
}

func (mBatch *goBadgerDBBatch) Delete(key []byte) {
	mBatch.writes = append(mBatch.writes, kv{cloneByte(key), nil})
	mBatch.size++
}

func (mBatch *goBadgerDBBatch) Write() error {
	err := mBatch.db.db.Update(func(txn *badger.Txn) error {
		for _, kv := range mBatch.writes {
			var err error
			if kv.v == nil {
				err = txn.Delete(kv.k)
			} else {
				err = txn.Set(kv.k, kv.v)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		blog.Error("Write", "error", err)
		return err
	}
	return nil
}

func (mBatch *goBadgerDBBatch) ValueSize() int {
	return mBatch.size
}

func (mBatch *goBadgerDBBatch) Reset() {
	mBatch.writes = mBatch.writes[:0]
	mBatch.size = 0
}
