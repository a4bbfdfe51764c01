package home

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/wakey/internal/alarm"
)

// countingStore is an in-memory alarm.Store that counts List calls.
type countingStore struct {
	alarms []alarm.Alarm
	lists  int
}

func (c *countingStore) List(ctx context.Context) ([]alarm.Alarm, error) {
	c.lists++
	return append([]alarm.Alarm(nil), c.alarms...), nil
}

func (c *countingStore) Create(ctx context.Context, clockTime, label string) (string, error) {
	panic("not used")
}

func (c *countingStore) Get(ctx context.Context, id string) (*alarm.Alarm, error) {
	panic("not used")
}

func (c *countingStore) Delete(ctx context.Context, id string) error { panic("not used") }

func (c *countingStore) ToggleEnabled(ctx context.Context, id string) (bool, error) {
	panic("not used")
}

func (c *countingStore) Update(ctx context.Context, id string, edit alarm.Edit) (bool, error) {
	panic("not used")
}

func (c *countingStore) MarkLastTriggered(ctx context.Context, id, minute string) error {
	panic("not used")
}

func (c *countingStore) SetTriggered(ctx context.Context, id string, triggered bool) error {
	panic("not used")
}

func (c *countingStore) ClearLastTriggered(ctx context.Context, id string) error {
	panic("not used")
}

func TestNextAlarmLineCachedAcrossRenders(t *testing.T) {
	cs := &countingStore{alarms: []alarm.Alarm{
		{ID: "a", Time: "07:30", Label: "Wake up", Enabled: true},
	}}

	h := New(cs, nil)
	if cs.lists != 1 {
		t.Fatalf("expected 1 List call after New, got %d", cs.lists)
	}
	if !strings.Contains(h.NextAlarmLine(), "07:30") {
		t.Fatalf("expected next alarm line to mention 07:30, got %q", h.NextAlarmLine())
	}

	for i := 0; i < 10; i++ {
		h.View(80, 24)
		h.NextAlarmLine()
	}
	if cs.lists != 1 {
		t.Fatalf("rendering queried the store: %d List calls", cs.lists)
	}
}

func TestNextAlarmLineRefreshesOnClockTick(t *testing.T) {
	cs := &countingStore{alarms: []alarm.Alarm{
		{ID: "a", Time: "07:30", Label: "Wake up", Enabled: true},
	}}

	h := New(cs, nil)
	cs.alarms = []alarm.Alarm{
		{ID: "b", Time: "09:15", Label: "Standup", Enabled: true},
	}

	s, _ := h.Update(clockTickMsg(time.Now()))
	h = s.(*HomeScreen)
	if cs.lists != 2 {
		t.Fatalf("expected List on clock tick, got %d calls", cs.lists)
	}
	if !strings.Contains(h.NextAlarmLine(), "09:15") {
		t.Fatalf("expected refreshed line to mention 09:15, got %q", h.NextAlarmLine())
	}
}
