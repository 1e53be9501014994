package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Record is a decoded registry entry, as shown by the inspection tools.
type Record struct {
	Key    string
	Kind   string
	ID     string
	Detail string
}

// Describe decodes one raw badger entry of the registry.
// Unknown keys are reported as RAW with their size.
func Describe(key string, val []byte) Record {
	record := Record{Key: key, Kind: "RAW", ID: "-", Detail: fmt.Sprintf("Size: %d bytes", len(val))}

	switch {
	case strings.HasPrefix(key, messagePrefix):
		record.Kind = "MESSAGE"
		if id, err := strconv.ParseUint(key[len(messagePrefix):], 10, 64); err == nil {
			record.ID = strconv.FormatUint(id, 10)
		}
		record.Detail = decode(val, &wrapperspb.StringValue{})
	case key == stateOwnerKey:
		record.Kind = "STATE"
		record.Detail = decode(val, &wrapperspb.StringValue{})
	case key == stateInitializedKey, key == statePausedKey:
		record.Kind = "STATE"
		record.Detail = decode(val, &wrapperspb.BoolValue{})
	case key == stateCountKey:
		record.Kind = "STATE"
		record.Detail = decode(val, &wrapperspb.UInt64Value{})
	}
	return record
}

func decode(val []byte, into proto.Message) string {
	if err := proto.Unmarshal(val, into); err != nil {
		return "Error: unmarshal failed"
	}
	switch v := into.(type) {
	case *wrapperspb.StringValue:
		return v.GetValue()
	case *wrapperspb.BoolValue:
		return strconv.FormatBool(v.GetValue())
	case *wrapperspb.UInt64Value:
		return strconv.FormatUint(v.GetValue(), 10)
	default:
		return "-"
	}
}
