// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockset 按 key 加锁，多个 key 按字典序加锁，避免死锁
package lockset

import (
	"sort"
	"sync"
)

type entry struct {
	mu  sync.Mutex
	ref int
}

//LockSet 按 key 互斥，不同 key 之间互不影响
type LockSet struct {
	mu    sync.Mutex
	locks map[string]*entry
}

//New new
func New() *LockSet {
	return &LockSet{locks: make(map[string]*entry)}
}

func (s *LockSet) acquire(key string) *entry {
	s.mu.Lock()
	e, ok := s.locks[key]
	if !ok {
		e = &entry{}
		s.locks[key] = e
	}
	e.ref++
	s.mu.Unlock()
	e.mu.Lock()
	return e
}

func (s *LockSet) release(key string, e *entry) {
	e.mu.Unlock()
	s.mu.Lock()
	e.ref--
	if e.ref == 0 {
		delete(s.locks, key)
	}
	s.mu.Unlock()
}

//Lock 锁住全部 key，返回解锁函数，重复的 key 只锁一次
func (s *LockSet) Lock(keys ...string) (unlock func()) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	entries := make([]*entry, len(sorted))
	for i, k := range sorted {
		entries[i] = s.acquire(k)
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			s.release(sorted[i], entries[i])
		}
	}
}

//Len 当前被持有或等待的 key 数目
func (s *LockSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
