package audit

import (
	"context"
	"log"
	"sync"
	"time"
)

type Recorder interface {
	Record(ev Event) error
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Dispatcher moves events off the request path: one worker records each
// event and, when a publisher is set, forwards it.
type Dispatcher struct {
	recorder  Recorder
	publisher Publisher
	queue     chan Event
	wg        sync.WaitGroup
}

func NewDispatcher(recorder Recorder, publisher Publisher) *Dispatcher {
	d := &Dispatcher{
		recorder:  recorder,
		publisher: publisher,
		queue:     make(chan Event, 100), // buffer seguro
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.recorder.Record(ev); err != nil {
			log.Println("audit error:", err)
		}

		if d.publisher == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.publisher.Publish(ctx, ev); err != nil {
			log.Println("audit publish error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		log.Println("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain. Dispatch
// must not be called afterwards.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
