package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// toJSONColumn encodes v for a JSON column. The values stored by this package
// are plain slices and structs, so encoding cannot fail.
func toJSONColumn(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(data)
}

// fromJSONColumn decodes a JSON column into dst. Empty and null columns leave dst untouched.
func fromJSONColumn(column datatypes.JSON, dst any, field, ownerID string) error {
	if len(column) == 0 || string(column) == "null" {
		return nil
	}
	if err := json.Unmarshal(column, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s (id=%s): %w", field, ownerID, err)
	}
	return nil
}
