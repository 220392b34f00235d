package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/aminofox/uasklv/pkg/uasklv"
	"github.com/aminofox/uasklv/pkg/value"
)

func sampleResult() *uasklv.Result {
	return &uasklv.Result{
		Packets: []uasklv.Packet{
			{Number: 1, Fields: []value.Field{
				{Name: "Checksum", Value: value.Uint(522)},
				{Name: "Mission ID", Value: value.String("goodwin")},
			}},
			{Number: 2, Fields: []value.Field{
				{Name: "Checksum", Value: value.Uint(10)},
			}},
		},
	}
}

func TestJSONRendersAllPackets(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleResult()); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\"number\": 1") {
		t.Errorf("missing packet number in output: %s", out)
	}
	if !strings.Contains(out, "goodwin") {
		t.Errorf("missing field value in output: %s", out)
	}
}

func TestCSVColumnsBlankWhenMissing(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleResult()); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing rendered CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 packets)", len(rows))
	}

	header := rows[0]
	missionIDCol := -1
	for i, h := range header {
		if h == "Mission ID" {
			missionIDCol = i
		}
	}
	if missionIDCol == -1 {
		t.Fatal("Mission ID column missing from header")
	}
	if rows[2][missionIDCol] != "" {
		t.Errorf("packet 2's Mission ID cell = %q, want blank", rows[2][missionIDCol])
	}
}
