package model

import (
	"encoding/json"
	"testing"
)

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    Colour
		wantErr bool
	}{
		{"255,255,255", White(), false},
		{" 1 , 2 ,3", Colour{R: 1, G: 2, B: 3}, false},
		{"1,2", Colour{}, true},
		{"1,2,256", Colour{}, true},
		{"a,b,c", Colour{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColour(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColour(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColour(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColourJSONUsesDisplayFormat(t *testing.T) {
	data, err := json.Marshal(struct {
		C Colour `json:"c"`
	}{Colour{R: 4, G: 5, B: 6}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"c":"4,5,6"}` {
		t.Errorf("got %s", data)
	}

	var back struct {
		C Colour `json:"c"`
	}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.C != (Colour{R: 4, G: 5, B: 6}) {
		t.Errorf("got %v", back.C)
	}
}
