package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestConditionUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Condition
	}{
		{
			name: "plain string",
			in:   `"act"`,
			want: PlainCondition("act"),
		},
		{
			name: "plain list",
			in:   `["drama","comedy"]`,
			want: PlainCondition([]any{"drama", "comedy"}),
		},
		{
			name: "plain number",
			in:   `2`,
			want: PlainCondition(float64(2)),
		},
		{
			name: "object with all members",
			in:   `{"require":["epic"],"include":"glad","exclude":["horror"]}`,
			want: Condition{
				Require: []any{"epic"},
				Include: "glad",
				Exclude: []any{"horror"},
			},
		},
		{
			name: "object with a single member",
			in:   `{"exclude":"horror"}`,
			want: Condition{Exclude: "horror"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Condition
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Condition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantIDs []string
		out     string
	}{
		{
			name:    "scalar stays scalar",
			in:      `"radarr-main"`,
			wantIDs: []string{"radarr-main"},
			out:     `"radarr-main"`,
		},
		{
			name:    "list stays list",
			in:      `["a","b"]`,
			wantIDs: []string{"a", "b"},
			out:     `["a","b"]`,
		},
		{
			name:    "numeric identifiers keep their literal form",
			in:      `[1,2]`,
			wantIDs: []string{"1", "2"},
			out:     `["1","2"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Apply
			if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantIDs, a.IDs()); diff != "" {
				t.Errorf("IDs mismatch (-want +got):\n%s", diff)
			}
			out, err := json.Marshal(a)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.out {
				t.Errorf("Marshal() = %s, want %s", out, tt.out)
			}
		})
	}
}

func TestFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantErr bool
	}{
		{
			name:    "valid filter",
			filter:  Filter{MediaType: MediaTypeMovie, Apply: ApplyOne("radarr")},
			wantErr: false,
		},
		{
			name:    "missing media type",
			filter:  Filter{Apply: ApplyOne("radarr")},
			wantErr: true,
		},
		{
			name:    "empty apply payload",
			filter:  Filter{MediaType: MediaTypeTV},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
