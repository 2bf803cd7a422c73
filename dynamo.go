package filterql

import (
	"fmt"
	"strconv"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// BindingsFromAttributeValues converts a DynamoDB item into a binding map,
// so items read through the AWS SDK can be filtered directly. Number
// attributes become Integer when the stored string parses as a 64-bit
// integer and Float otherwise. Set, list, map and binary attributes have no
// counterpart in the expression value space and are rejected.
func BindingsFromAttributeValues(item map[string]ddbtypes.AttributeValue) (map[string]Value, error) {
	bindings := make(map[string]Value, len(item))

	for name, attr := range item {
		val, err := attributeToValue(attr)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}

		bindings[name] = val
	}

	return bindings, nil
}

func attributeToValue(attr ddbtypes.AttributeValue) (Value, error) {
	switch val := attr.(type) {
	case *ddbtypes.AttributeValueMemberS:
		return Str(val.Value), nil
	case *ddbtypes.AttributeValueMemberN:
		if n, err := strconv.ParseInt(val.Value, 10, 64); err == nil {
			return Int(n), nil
		}

		f, err := strconv.ParseFloat(val.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number attribute %q: %w", val.Value, err)
		}

		return Float(f), nil
	case *ddbtypes.AttributeValueMemberBOOL:
		return Bool(val.Value), nil
	case *ddbtypes.AttributeValueMemberNULL:
		return Null(), nil
	}

	return nil, fmt.Errorf("attribute type %T is not supported", attr)
}
