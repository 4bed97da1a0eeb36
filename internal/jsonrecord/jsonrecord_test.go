package jsonrecord

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/valyala/fastjson"

	"github.com/philipp01105/logshim/core"
)

func TestField(t *testing.T) {
	v := fastjson.MustParse(`{"s":"x","i":42,"f":0.5,"t":true,"n":null,"o":{"a":[1,2]}}`)

	tests := []struct {
		key  string
		typ  core.FieldType
		want string
	}{
		{"s", core.StringType, "x"},
		{"i", core.Int64Type, "42"},
		{"f", core.Float64Type, "0.5"},
		{"t", core.BoolType, "true"},
		{"o", core.AnyType, `{"a":[1,2]}`},
	}
	for _, tt := range tests {
		f := Field(tt.key, v.Get(tt.key))
		if f.Type != tt.typ || f.StringValue() != tt.want {
			t.Errorf("Field(%q) = %v %q, want %v %q", tt.key, f.Type, f.StringValue(), tt.typ, tt.want)
		}
	}

	n := Field("n", v.Get("n"))
	if n.Type != core.AnyType || n.Any != nil {
		t.Errorf("Field(null) = %+v, want nil Any", n)
	}

	raw, err := json.Marshal(Field("o", v.Get("o")).Any)
	if err != nil || string(raw) != `{"a":[1,2]}` {
		t.Errorf("Raw marshals to %s, %v", raw, err)
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{`1700000000.5`, time.Unix(1700000000, 5e8), true},
		{`"2026-01-15T12:00:00Z"`, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), true},
		{`"2026-01-15T13:00:00.123+0100"`, time.Date(2026, 1, 15, 12, 0, 0, 123e6, time.UTC), true},
		{`"yesterday"`, time.Time{}, false},
		{`false`, time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := Time(fastjson.MustParse(tt.input))
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("Time(%s) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCaller(t *testing.T) {
	c := Caller("api/handler.go:31")
	if !c.Defined || c.File != "api/handler.go" || c.Line != 31 {
		t.Errorf("Caller() = %+v", c)
	}
	if Caller("nocolon").Defined || Caller("file.go:x").Defined {
		t.Error("Expected undefined caller for malformed input")
	}
}
