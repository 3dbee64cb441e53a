package dsa

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// SignatureParser reads (message, r, s) transcript records from a source.
type SignatureParser interface {
	// ParseSignatures parses signature records from a source and returns them.
	ParseSignatures(source string) ([]*SignedMessage, error)
}

// ParseBigInt parses a non-negative integer from its decimal or 0x-prefixed
// hex string form. Empty, negative or otherwise malformed input is rejected
// here, before it can reach the arithmetic layer.
func ParseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty numeric value")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative value not accepted: %s", s)
	}

	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}

	z, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid number format: %q", s)
	}
	return z, nil
}

// parseValue accepts the value forms a decoded JSON document can carry.
func parseValue(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		return ParseBigInt(v)
	case json.Number:
		return ParseBigInt(string(v))
	default:
		return nil, fmt.Errorf("unsupported numeric type: %T", val)
	}
}

// JSONParser parses signature records from JSON files.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "...", "s": "..."},
//	  {"z": "0x...", "r": "0x...", "s": "0x..."}
//	]
type JSONParser struct {
	MessageField string // Field name for message (default: "message")
	RField       string // Field name for r (default: "r")
	SField       string // Field name for s (default: "s")
	ZField       string // Field name for the digest integer (default: "z")
}

// ParseSignatures parses signature records from a JSON file.
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*SignedMessage, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	messageField := p.MessageField
	if messageField == "" {
		messageField = "message"
	}
	rField := p.RField
	if rField == "" {
		rField = "r"
	}
	sField := p.SField
	if sField == "" {
		sField = "s"
	}
	zField := p.ZField
	if zField == "" {
		zField = "z"
	}

	records := make([]*SignedMessage, 0, len(items))
	for i, item := range items {
		rec := &SignedMessage{}

		if zVal, ok := item[zField]; ok {
			z, err := parseValue(zVal)
			if err != nil {
				return nil, fmt.Errorf("record %d: failed to parse z: %w", i, err)
			}
			rec.Z = z
		} else if msgVal, ok := item[messageField]; ok {
			msg, ok := msgVal.(string)
			if !ok {
				return nil, fmt.Errorf("record %d: message field must be a string", i)
			}
			rec.Message = []byte(msg)
		} else {
			return nil, fmt.Errorf("record %d: missing message or z field", i)
		}

		rVal, ok := item[rField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing r field", i)
		}
		if rec.R, err = parseValue(rVal); err != nil {
			return nil, fmt.Errorf("record %d: failed to parse r: %w", i, err)
		}

		sVal, ok := item[sField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing s field", i)
		}
		if rec.S, err = parseValue(sVal); err != nil {
			return nil, fmt.Errorf("record %d: failed to parse s: %w", i, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

// CSVParser parses signature records from CSV files with a header row.
type CSVParser struct {
	MessageCol string // Column name for message (default: "message")
	RCol       string // Column name for r (default: "r")
	SCol       string // Column name for s (default: "s")
	ZCol       string // Column name for the digest integer (default: "z")
}

// ParseSignatures parses signature records from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*SignedMessage, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	messageCol := p.MessageCol
	if messageCol == "" {
		messageCol = "message"
	}
	rCol := p.RCol
	if rCol == "" {
		rCol = "r"
	}
	sCol := p.SCol
	if sCol == "" {
		sCol = "s"
	}
	zCol := p.ZCol
	if zCol == "" {
		zCol = "z"
	}

	messageIdx, rIdx, sIdx, zIdx := -1, -1, -1, -1
	for i, col := range header {
		switch col {
		case messageCol:
			messageIdx = i
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		case zCol:
			zIdx = i
		}
	}
	if rIdx == -1 || sIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s or %s", rCol, sCol)
	}

	var records []*SignedMessage
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		rec := &SignedMessage{}

		switch {
		case zIdx >= 0 && zIdx < len(record) && strings.TrimSpace(record[zIdx]) != "":
			if rec.Z, err = ParseBigInt(record[zIdx]); err != nil {
				return nil, fmt.Errorf("line %d: failed to parse z: %w", line, err)
			}
		case messageIdx >= 0 && messageIdx < len(record):
			rec.Message = []byte(record[messageIdx])
		default:
			return nil, fmt.Errorf("line %d: missing message or z column", line)
		}

		if rIdx >= len(record) {
			return nil, fmt.Errorf("line %d: r column out of range", line)
		}
		if rec.R, err = ParseBigInt(record[rIdx]); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse r: %w", line, err)
		}

		if sIdx >= len(record) {
			return nil, fmt.Errorf("line %d: s column out of range", line)
		}
		if rec.S, err = ParseBigInt(record[sIdx]); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse s: %w", line, err)
		}

		records = append(records, rec)
	}

	return records, nil
}
