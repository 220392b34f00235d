// Package render serializes a decoded Result to JSON or CSV (spec.md
// §6). The CSV layout mirrors the reference decoder's output script:
// one row per packet, one column per field name seen across any
// packet, blank where a packet doesn't carry that field.
package render

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/aminofox/uasklv/pkg/uasklv"
)

// JSON renders result as an indented JSON object: a "packets" array,
// each entry a "number" and a "fields" object keyed by field name.
func JSON(w io.Writer, result *uasklv.Result) error {
	type packetDoc struct {
		Number int                    `json:"number"`
		Fields map[string]interface{} `json:"fields"`
	}
	doc := struct {
		Packets []packetDoc `json:"packets"`
	}{}

	for _, p := range result.Packets {
		fields := make(map[string]interface{}, len(p.Fields))
		for _, f := range p.Fields {
			fields[f.Name] = f.Value.Interface()
		}
		doc.Packets = append(doc.Packets, packetDoc{Number: p.Number, Fields: fields})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// CSV renders result as a CSV table: column 0 is the packet number,
// followed by every field name encountered, sorted by name.
// Packets missing a field leave that cell blank.
func CSV(w io.Writer, result *uasklv.Result) error {
	var columns []string
	seen := make(map[string]bool)
	for _, p := range result.Packets {
		for _, f := range p.Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				columns = append(columns, f.Name)
			}
		}
	}
	sort.Strings(columns)

	cw := csv.NewWriter(w)
	header := append([]string{"packet"}, columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range result.Packets {
		row := make([]string, len(header))
		row[0] = strconv.Itoa(p.Number)

		byName := make(map[string]string, len(p.Fields))
		for _, f := range p.Fields {
			byName[f.Name] = renderCell(f.Value.Interface())
		}
		for i, col := range columns {
			row[i+1] = byName[col]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func renderCell(v interface{}) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
