package realtime

import (
	"testing"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster returned nil")
	}
	if b.Len() != 0 {
		t.Errorf("Len %d, want 0", b.Len())
	}
}

func TestBroadcaster_PublishDeliversToSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish("board")
	if got := <-ch1; got != "board" {
		t.Errorf("ch1 got %q, want board", got)
	}
	if got := <-ch2; got != "board" {
		t.Errorf("ch2 got %q, want board", got)
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	b.Unsubscribe(ch1)
	if _, open := <-ch1; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	b.Publish("status")
	if got := <-ch2; got != "status" {
		t.Errorf("ch2 got %q, want status", got)
	}
	if b.Len() != 1 {
		t.Errorf("Len %d, want 1", b.Len())
	}
	b.Unsubscribe(ch2)
	b.Unsubscribe(ch2)
}

func TestBroadcaster_PublishDropsWhenLagging(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)
	for i := 0; i < SubscriberBuffer+5; i++ {
		b.Publish("board")
	}
	if len(ch) != SubscriberBuffer {
		t.Errorf("buffered %d events, want %d", len(ch), SubscriberBuffer)
	}
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Close()
	if _, open := <-ch; open {
		t.Error("subscriber channel open after Close")
	}
	late := b.Subscribe()
	if _, open := <-late; open {
		t.Error("subscribing after Close returned an open channel")
	}
	b.Publish("board")
	b.Unsubscribe(ch)
}
