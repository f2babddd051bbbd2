// Package memory provides in-process implementations of the core's ports. They
// back the service when STORE_DRIVER=memory and serve as fast fakes in tests.
//
// OrderStore serializes writes per order with one mutex per entry; the map
// lock is held only to find or insert an entry, so unrelated orders never
// contend.
package memory
