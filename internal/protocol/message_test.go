package protocol

import "testing"

func TestDecodePushPartialFields(t *testing.T) {
	push, err := DecodePush([]byte(`{"value":"145","ageMinutes":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if push.Value == nil || *push.Value != "145" {
		t.Errorf("value not decoded: %+v", push.Value)
	}
	if push.AgeMinutes == nil || *push.AgeMinutes != 3 {
		t.Errorf("ageMinutes not decoded: %+v", push.AgeMinutes)
	}
	if push.Delta != nil || push.Trend != nil || push.History != nil ||
		push.Alert != nil || push.Low != nil || push.High != nil ||
		push.NeedsSetup != nil || push.Reversed != nil {
		t.Errorf("absent fields must stay nil: %+v", push)
	}
}

func TestDecodePushMalformed(t *testing.T) {
	if _, err := DecodePush([]byte("not json")); err == nil {
		t.Error("expected decode error for malformed payload")
	}
}

func TestEncodeRequestMarker(t *testing.T) {
	got := string(EncodeRequest())
	want := `{"requestData":1}`
	if got != want {
		t.Errorf("request marker: got %s, want %s", got, want)
	}
}

func TestSuppressesDelta(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"LOW", true},
		{"HIGH", true},
		{"145", false},
		{"", false},
		{"low", false},
	}
	for _, tc := range cases {
		if got := SuppressesDelta(tc.text); got != tc.want {
			t.Errorf("SuppressesDelta(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
