// update_queue.go - Bounded single-producer/single-consumer ring for parameter updates

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "sync/atomic"

const DEFAULT_UPDATE_QUEUE_SIZE = 256

// updateQueue is a lock-free SPSC ring. Push is the producer side and Pop
// the consumer side; neither waits on the other. head and tail only grow,
// the slot index is the counter masked by the power-of-two capacity.
type updateQueue struct {
	// Cache line 1 - consumer index
	head atomic.Uint64
	_pad1 [56]byte

	// Cache line 2 - producer index
	tail atomic.Uint64
	_pad2 [56]byte

	mask  uint64
	slots []Update
}

func newUpdateQueue(size int) *updateQueue {
	n := nextPowerOf2(max(size, 2))
	return &updateQueue{
		mask:  uint64(n - 1),
		slots: make([]Update, n),
	}
}

// Push appends u unless the ring is full.
func (q *updateQueue) Push(u Update) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() >= uint64(len(q.slots)) {
		return false
	}
	q.slots[tail&q.mask] = u
	q.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest update, if any.
func (q *updateQueue) Pop() (Update, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Update{}, false
	}
	u := q.slots[head&q.mask]
	q.head.Store(head + 1)
	return u, true
}

func (q *updateQueue) Len() int {
	head := q.head.Load()
	return int(q.tail.Load() - head)
}

func (q *updateQueue) Cap() int {
	return len(q.slots)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
