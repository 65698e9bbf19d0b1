package publish

import (
	"context"
	"errors"
	"testing"
)

// recordingPublisher captures publishes in order.
type recordingPublisher struct {
	topics []string
	values []string
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, topic, value string) error {
	if r.err != nil {
		return r.err
	}
	r.topics = append(r.topics, topic)
	r.values = append(r.values, value)
	return nil
}

func TestMetricsFlattening(t *testing.T) {
	payload := struct {
		Status     string `json:"status"`
		Downstream struct {
			PowerAvg float64 `json:"power_avg_dbmv"`
			Channels int     `json:"channels"`
		} `json:"downstream"`
	}{Status: "OPERATIONAL"}
	payload.Downstream.PowerAvg = 7.5
	payload.Downstream.Channels = 32

	rec := &recordingPublisher{}
	if err := Metrics(context.Background(), rec, "modemgate/docsis/JW123", payload); err != nil {
		t.Fatalf("Metrics failed: %v", err)
	}

	wantTopics := []string{
		"modemgate/docsis/JW123/status",
		"modemgate/docsis/JW123/downstream/power_avg_dbmv",
		"modemgate/docsis/JW123/downstream/channels",
	}
	wantValues := []string{"OPERATIONAL", "7.5", "32"}

	if len(rec.topics) != len(wantTopics) {
		t.Fatalf("Published %d metrics, want %d", len(rec.topics), len(wantTopics))
	}
	for i := range wantTopics {
		if rec.topics[i] != wantTopics[i] {
			t.Errorf("Topic %d = %q, want %q", i, rec.topics[i], wantTopics[i])
		}
		if rec.values[i] != wantValues[i] {
			t.Errorf("Value %d = %q, want %q", i, rec.values[i], wantValues[i])
		}
	}
}

func TestMetricsPublisherError(t *testing.T) {
	boom := errors.New("broker down")
	rec := &recordingPublisher{err: boom}
	err := Metrics(context.Background(), rec, "base", map[string]string{"a": "1"})
	if !errors.Is(err, boom) {
		t.Errorf("Expected publisher error to surface, got %v", err)
	}
}

func TestFanOutPublishesToAll(t *testing.T) {
	a := &recordingPublisher{}
	b := &recordingPublisher{}
	fan := NewFanOutPublisher(a, b)

	if err := fan.Publish(context.Background(), "t", "v"); err != nil {
		t.Fatalf("FanOut failed: %v", err)
	}
	if len(a.topics) != 1 || len(b.topics) != 1 {
		t.Errorf("FanOut reached %d/%d publishers, want 1/1", len(a.topics), len(b.topics))
	}
}

func TestFanOutSurfacesFirstError(t *testing.T) {
	boom := errors.New("half down")
	fan := NewFanOutPublisher(&recordingPublisher{}, &recordingPublisher{err: boom})

	if err := fan.Publish(context.Background(), "t", "v"); !errors.Is(err, boom) {
		t.Errorf("Expected %v, got %v", boom, err)
	}
}
