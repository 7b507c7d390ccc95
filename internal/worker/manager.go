// Package worker runs the background consumers that turn post domain events
// into keyword notifications.
package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Fred-Ko/wanted/internal/queue"
)

const (
	// DefaultWorkerCount is the number of consumer goroutines to run.
	DefaultWorkerCount = 2

	// BatchSize is the max number of messages to read per XREADGROUP call.
	BatchSize = 10

	// BlockTimeout is how long a worker blocks waiting for new messages
	// before re-checking for shutdown.
	BlockTimeout = 5 * time.Second
)

// Manager runs a pool of workers that consume post events from the stream
// and hand them to the Handler.
type Manager struct {
	consumer    queue.Consumer
	handler     *Handler
	workerCount int

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewManager creates a worker manager. workerCount <= 0 falls back to
// DefaultWorkerCount.
func NewManager(consumer queue.Consumer, handler *Handler, workerCount int) *Manager {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	return &Manager{
		consumer:    consumer,
		handler:     handler,
		workerCount: workerCount,
	}
}

// Start creates the consumer group and launches the worker goroutines.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.consumer.EnsureGroup(ctx, queue.StreamPostEvents, queue.ConsumerGroupKeywordNotifiers); err != nil {
		return fmt.Errorf("ensure consumer group: %w", err)
	}

	ctx, m.cancel = context.WithCancel(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}

	log.Printf("[WorkerManager] started %d workers: stream=%s group=%s",
		m.workerCount, queue.StreamPostEvents, queue.ConsumerGroupKeywordNotifiers)
	return nil
}

// Stop signals all workers to finish and waits for them to drain.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	log.Printf("[WorkerManager] all workers stopped")
}

func (m *Manager) runWorker(ctx context.Context, workerID int) {
	defer m.wg.Done()

	consumerName := fmt.Sprintf("worker-%d-%s", workerID, uuid.NewString()[:8])
	log.Printf("[Worker %d] started: consumer=%s", workerID, consumerName)

	// Re-deliver anything a previous incarnation left unacknowledged.
	m.processPending(ctx, workerID, consumerName)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Worker %d] stopping", workerID)
			return
		default:
			m.processMessages(ctx, workerID, consumerName)
		}
	}
}

// processPending drains messages that were delivered to this consumer but
// never acknowledged.
func (m *Manager) processPending(ctx context.Context, workerID int, consumerName string) {
	for {
		messages, err := m.consumer.ReadPending(ctx, queue.StreamPostEvents,
			queue.ConsumerGroupKeywordNotifiers, consumerName, BatchSize)
		if err != nil {
			log.Printf("[Worker %d] read pending failed: %v", workerID, err)
			return
		}
		if len(messages) == 0 {
			return
		}

		log.Printf("[Worker %d] recovering %d pending messages", workerID, len(messages))
		m.handleMessages(ctx, workerID, messages)
	}
}

func (m *Manager) processMessages(ctx context.Context, workerID int, consumerName string) {
	messages, err := m.consumer.Read(ctx, queue.StreamPostEvents,
		queue.ConsumerGroupKeywordNotifiers, consumerName, BatchSize, BlockTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("[Worker %d] read failed: %v", workerID, err)
		time.Sleep(time.Second)
		return
	}

	m.handleMessages(ctx, workerID, messages)
}

// handleMessages processes each message and acknowledges it regardless of
// handler outcome. A handler error is logged, not retried: redelivering a
// malformed or unprocessable event forever would wedge the group.
func (m *Manager) handleMessages(ctx context.Context, workerID int, messages []queue.Message) {
	for _, msg := range messages {
		if err := m.handler.HandleEvent(ctx, msg.Envelope); err != nil {
			log.Printf("[Worker %d] handle failed: msgID=%s kind=%s err=%v",
				workerID, msg.ID, msg.Envelope.Kind, err)
		}

		if err := m.consumer.Ack(ctx, queue.StreamPostEvents,
			queue.ConsumerGroupKeywordNotifiers, msg.ID); err != nil {
			log.Printf("[Worker %d] ack failed: msgID=%s err=%v", workerID, msg.ID, err)
		}
	}
}
