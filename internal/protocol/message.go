package protocol

import (
	"encoding/json"
	"fmt"
)

// Push is one inbound companion message. Every field is optional and
// independent; a nil field leaves the previous engine state untouched.
type Push struct {
	Value      *string `json:"value,omitempty"`
	Delta      *string `json:"delta,omitempty"`
	Trend      *uint8  `json:"trend,omitempty"`
	AgeMinutes *int    `json:"ageMinutes,omitempty"`
	History    *string `json:"history,omitempty"`
	Alert      *uint8  `json:"alert,omitempty"`
	Low        *int    `json:"low,omitempty"`
	High       *int    `json:"high,omitempty"`
	NeedsSetup *bool   `json:"needsSetup,omitempty"`
	Reversed   *bool   `json:"reversed,omitempty"`
	Battery    *int    `json:"battery,omitempty"`
	Charging   *bool   `json:"charging,omitempty"`
}

// DecodePush parses raw companion bytes into a Push.
func DecodePush(data []byte) (*Push, error) {
	var push Push
	if err := json.Unmarshal(data, &push); err != nil {
		return nil, fmt.Errorf("protocol: decode push: %w", err)
	}
	return &push, nil
}

// Request is the single outbound message: a fixed request-data marker.
type Request struct {
	RequestData int `json:"requestData"`
}

// EncodeRequest builds the request-data marker payload.
func EncodeRequest() []byte {
	data, _ := json.Marshal(Request{RequestData: 1})
	return data
}

// SuppressesDelta reports whether a reading text is one of the sensor's
// clipped sentinels, which leave no room for the delta on the display.
func SuppressesDelta(valueText string) bool {
	return valueText == "LOW" || valueText == "HIGH"
}
