package app

import (
	"log"
	"sync"

	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

const peerQueueSize = 64

// peer is one connected planner. Frames are queued and written by the
// connection's own write loop.
type peer struct {
	send chan []byte
}

func newPeer() *peer {
	return &peer{send: make(chan []byte, peerQueueSize)}
}

// offer queues a frame without blocking. It reports false when the peer is
// too far behind.
func (p *peer) offer(frame []byte) bool {
	select {
	case p.send <- frame:
		return true
	default:
		return false
	}
}

type hub struct {
	mu    sync.Mutex
	peers map[*peer]struct{}
}

func newHub() *hub {
	return &hub{peers: make(map[*peer]struct{})}
}

func (h *hub) join(p *peer) {
	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) leave(p *peer) {
	h.mu.Lock()
	delete(h.peers, p)
	h.mu.Unlock()
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *hub) broadcast(batch wire.Events) {
	frame, err := wire.EncodeInbound(batch)
	if err != nil {
		log.Printf("encode confirmation %s: %v", batch.Header.TransactionID, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		if !p.offer(frame) {
			log.Printf("drop confirmation %s for slow peer", batch.Header.TransactionID)
		}
	}
}
