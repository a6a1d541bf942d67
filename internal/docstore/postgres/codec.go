package postgres

import (
	"encoding/json"
	"time"

	"github.com/agora/backend/internal/docstore"
)

// References are stored as {"$ref": collection, "$id": id} objects and
// timestamps as RFC3339 strings, so any JSON client can read the rows.
const (
	refCollectionKey = "$ref"
	refIDKey         = "$id"
)

func encodeFields(fields map[string]interface{}) ([]byte, error) {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = encodeValue(v)
	}
	return json.Marshal(out)
}

func encodeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case docstore.Ref:
		return map[string]interface{}{refCollectionKey: val.Collection, refIDKey: val.ID}
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case []docstore.Ref:
		items := make([]interface{}, 0, len(val))
		for _, ref := range val {
			items = append(items, encodeValue(ref))
		}
		return items
	case []interface{}:
		items := make([]interface{}, 0, len(val))
		for _, item := range val {
			items = append(items, encodeValue(item))
		}
		return items
	default:
		return v
	}
}

func decodeDocument(id string, raw []byte) (docstore.Document, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return docstore.Document{}, err
	}
	for k, v := range fields {
		fields[k] = decodeValue(v)
	}
	return docstore.NewDocument(id, fields), nil
}

func decodeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		collection, hasColl := val[refCollectionKey].(string)
		id, hasID := val[refIDKey].(string)
		if hasColl && hasID && len(val) == 2 {
			return docstore.NewRef(collection, id)
		}
		return val
	case []interface{}:
		items := make([]interface{}, 0, len(val))
		for _, item := range val {
			items = append(items, decodeValue(item))
		}
		return items
	default:
		return v
	}
}
