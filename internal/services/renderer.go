package services

import (
	"math/rand"
	"sync"
	"time"

	"asir-guide-api/internal/models"
)

// Typing delay window: base plus up to jitter, in typing units. With the
// default unit of one millisecond this is the 1.5s-2.5s window the widget
// animates.
const (
	typingDelayBase   = 1500
	typingDelayJitter = 1000

	// DefaultTypingUnit is the production typing unit. Tests pass zero to
	// render without delay.
	DefaultTypingUnit = time.Millisecond
)

// Renderer receives the messages the dispatcher emits. Dispatch logic never
// touches a transport or a transcript directly.
type Renderer interface {
	RenderUser(text string)
	RenderBot(text string)
	RenderBotNow(text string)
}

type queuedMessage struct {
	text  string
	delay time.Duration
}

// TranscriptRenderer appends messages to an append-only transcript. Bot
// messages rendered with typing simulation pass through a FIFO queue
// drained by a single worker, so display order matches request order even
// though every message draws an independent random delay.
type TranscriptRenderer struct {
	mu      sync.Mutex
	entries []models.TranscriptEntry
	cursor  int

	queue chan queuedMessage
	wg    sync.WaitGroup
	unit  time.Duration

	closeOnce sync.Once
}

func NewTranscriptRenderer(unit time.Duration) *TranscriptRenderer {
	r := &TranscriptRenderer{
		queue: make(chan queuedMessage, 64),
		unit:  unit,
	}
	go r.drainQueue()
	return r
}

func (r *TranscriptRenderer) RenderUser(text string) {
	r.append(models.SenderUser, text, 0)
}

// RenderBot enqueues a bot message behind the simulated typing delay.
func (r *TranscriptRenderer) RenderBot(text string) {
	delay := time.Duration(typingDelayBase+rand.Intn(typingDelayJitter)) * r.unit
	r.wg.Add(1)
	r.queue <- queuedMessage{text: text, delay: delay}
}

// RenderBotNow appends a bot message immediately, skipping the queue.
func (r *TranscriptRenderer) RenderBotNow(text string) {
	r.append(models.SenderBot, text, 0)
}

// Wait blocks until every queued bot message has been rendered.
func (r *TranscriptRenderer) Wait() {
	r.wg.Wait()
}

// Drain returns the entries appended since the previous Drain call.
func (r *TranscriptRenderer) Drain() []models.TranscriptEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.TranscriptEntry, len(r.entries)-r.cursor)
	copy(out, r.entries[r.cursor:])
	r.cursor = len(r.entries)
	return out
}

// Transcript returns a copy of the full transcript.
func (r *TranscriptRenderer) Transcript() []models.TranscriptEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.TranscriptEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Close stops the queue worker. Queued messages already submitted are still
// rendered.
func (r *TranscriptRenderer) Close() {
	r.closeOnce.Do(func() {
		close(r.queue)
	})
}

func (r *TranscriptRenderer) drainQueue() {
	for msg := range r.queue {
		if msg.delay > 0 {
			time.Sleep(msg.delay)
		}
		r.append(models.SenderBot, msg.text, msg.delay.Milliseconds())
		r.wg.Done()
	}
}

func (r *TranscriptRenderer) append(sender, text string, typingMillis int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, models.TranscriptEntry{
		Sender:       sender,
		Text:         text,
		Timestamp:    time.Now(),
		TypingMillis: typingMillis,
	})
}
