// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package events is a small typed pub/sub bus. The drain loop publishes its
// state changes here so dashboards and other collaborators outside the core
// can refresh without being wired into the pipeline.
package events

import (
	"reflect"
	"sync"
)

type subscriber func(any)

type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]subscriber // type name -> id -> sub
}

func NewBus() *Bus {
	return &Bus{subs: map[string]map[int]subscriber{}}
}

func typeNameOf[T any]() string {
	var zero *T
	rt := reflect.TypeOf(zero).Elem()
	return rt.PkgPath() + "." + rt.Name()
}

// Subscribe registers fn for events of type T and returns an unsubscribe func.
func Subscribe[T any](b *Bus, fn func(T)) func() {
	name := typeNameOf[T]()
	wrapped := func(v any) {
		if ev, ok := v.(T); ok {
			fn(ev)
		}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[name] == nil {
		b.subs[name] = map[int]subscriber{}
	}
	b.subs[name][id] = wrapped
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[name], id)
	}
}

// Publish delivers ev to every subscriber of its type, synchronously. A
// panicking subscriber does not take down the publisher.
func Publish[T any](b *Bus, ev T) {
	name := typeNameOf[T]()

	b.mu.RLock()
	ss := make([]subscriber, 0, len(b.subs[name]))
	for _, s := range b.subs[name] {
		ss = append(ss, s)
	}
	b.mu.RUnlock()

	for _, s := range ss {
		func() {
			defer func() {
				_ = recover()
			}()
			s(ev)
		}()
	}
}
