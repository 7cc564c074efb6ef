package types_test

import (
	"encoding/json"
	"testing"

	"github.com/EL-K-Code/recipe-app-api/internal/types"
)

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"number", `42`, 42, false},
		{"string", `"42"`, 42, false},
		{"negative number", `-5`, -5, false},
		{"negative string", `"-5"`, -5, false},
		{"zero", `0`, 0, false},
		{"bad string", `"forty-two"`, 0, true},
		{"float", `4.2`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f types.FlexInt
			err := json.Unmarshal([]byte(tc.input), &f)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if f.Int() != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, f.Int())
			}
		})
	}
}

func TestFlexIntMarshal(t *testing.T) {
	f := types.FlexInt(22)
	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "22" {
		t.Errorf("Expected 22, got %s", out)
	}
}
