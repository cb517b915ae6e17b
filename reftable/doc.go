// Package reftable maps opaque integer references to Go values.
//
// It is the heap behind the in-memory JVM in package jnitest: every managed
// object (class, string, array, instance) lives in a Table and is addressed
// by the Handle the table returned when the object was inserted. Handle 0 is
// reserved and always invalid, which lets it double as the null reference.
//
//	heap := reftable.New[*object]()
//	h, err := heap.Insert(obj)
//	obj, ok := heap.Get(h)
//
// # Pinning
//
// A pinned entry cannot be removed. The VM pins class objects so that a
// stray DeleteLocalRef on a class reference cannot unload the class:
//
//	heap.Pin(h)
//	_, ok := heap.Remove(h) // ok == false while pinned
//
// # Observers
//
// Observers receive insert/remove events; jnitest uses them to log heap
// traffic and tests use them to count live references.
package reftable
