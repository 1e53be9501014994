// Package domain contains core concepts of the message registry.
// This file defines stored messages and the identities that submit them.
// Messages are immutable once stored and never record who sent them.
package domain

// Principal identifies a calling account, as resolved by the transport.
type Principal string

func (p Principal) String() string {
	return string(p)
}

// Message represents an immutable registry entry.
type Message struct {
	ID      uint64 // dense, zero-based
	Content string
	Sender  *Principal // always nil
}

// BulkReceipt holds the identifiers assigned by a two-message submission.
type BulkReceipt struct {
	FirstID  uint64
	SecondID uint64
}
