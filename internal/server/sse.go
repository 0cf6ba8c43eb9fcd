package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/jonathan/resuexpress/internal/navigation"
	"github.com/jonathan/resuexpress/internal/types"
)

// Event names on the /events stream.
const (
	EventPreview    = "preview"
	EventList       = "list"
	EventStep       = "step"
	EventTemplate   = "template"
	EventStylesheet = "stylesheet"
)

const (
	publishBuffer = 256
	clientBuffer  = 64
)

type previewEvent struct {
	Template string `json:"template"`
	HTML     string `json:"html"`
}

type listEvent struct {
	Section types.Section  `json:"section"`
	Records []types.Record `json:"records"`
}

type templateEvent struct {
	Key string `json:"key"`
}

// encodeEvent formats one SSE frame.
func encodeEvent(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, payload)), nil
}

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	frame, err := encodeEvent(event, data)
	if err != nil {
		return err
	}
	return s.WriteFrame(frame)
}

// WriteFrame sends a frame produced by the broker.
func (s *SSEWriter) WriteFrame(frame []byte) error {
	if _, err := s.w.Write(frame); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Broker fans session events out to every connected stream. It implements
// wizard.Observer.
//
// Observer callbacks run while the session holds its lock, so payloads are encoded
// on the caller's goroutine and handed to the loop without blocking. A frame that
// does not fit a buffer is dropped; streams resynchronise on the next preview.
type Broker struct {
	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan []byte
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
	dropped atomic.Int64
}

// NewBroker creates a broker and starts its loop.
func NewBroker() *Broker {
	b := &Broker{
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan []byte, publishBuffer),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case frame := <-b.publishCh:
			for ch := range clients {
				select {
				case ch <- frame:
				default:
					b.dropped.Add(1)
				}
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close stops the loop and closes every client channel.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a client and returns its channel. The channel is closed by
// Unsubscribe or Close.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	if b.closed.Load() {
		close(ch)
		return ch
	}
	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}
	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}
	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Dropped returns how many frames were discarded because a buffer was full.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

// Publish encodes data and queues it for every client. It never blocks.
func (b *Broker) Publish(event string, data any) {
	if b.closed.Load() {
		return
	}
	frame, err := encodeEvent(event, data)
	if err != nil {
		return
	}
	select {
	case b.publishCh <- frame:
	default:
		b.dropped.Add(1)
	}
}

// PreviewRendered implements wizard.Observer.
func (b *Broker) PreviewRendered(key, html string) {
	b.Publish(EventPreview, previewEvent{Template: key, HTML: html})
}

// ListChanged implements wizard.Observer.
func (b *Broker) ListChanged(section types.Section, records []types.Record) {
	b.Publish(EventList, listEvent{Section: section, Records: records})
}

// StepChanged implements wizard.Observer.
func (b *Broker) StepChanged(view navigation.StepView) {
	b.Publish(EventStep, view)
}

// TemplateChanged implements wizard.Observer.
func (b *Broker) TemplateChanged(key string) {
	b.Publish(EventTemplate, templateEvent{Key: key})
}
