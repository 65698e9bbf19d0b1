package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Metrics flattens payload (any JSON-marshalable value) into one topic per
// leaf and publishes each, in document order. Nested objects become
// slash-joined topic paths under base:
//
//	base/downstream/power_avg_dbmv 7.5
func Metrics(ctx context.Context, pub Publisher, base string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	return flatten(ctx, pub, base, gjson.ParseBytes(raw))
}

func flatten(ctx context.Context, pub Publisher, topic string, node gjson.Result) error {
	if !node.IsObject() {
		// Raw bytes keep the number formatting the marshaler produced.
		value := node.Raw
		if node.Type == gjson.String {
			value = node.String()
		}
		return pub.Publish(ctx, topic, value)
	}

	var err error
	node.ForEach(func(k, v gjson.Result) bool {
		err = flatten(ctx, pub, topic+"/"+k.String(), v)
		return err == nil
	})
	return err
}
