package compiler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format names a machine description encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromExt maps a file extension (with or without the dot) to a Format.
func FormatFromExt(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return FormatCSV, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	}
	return "", false
}

// Parser converts raw machine descriptions into validated machines.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data in the given format and validates the result.
func (p *Parser) Parse(data []byte, format Format) (*domain.Machine, error) {
	var (
		def domain.Definition
		err error
	)
	switch format {
	case FormatCSV:
		def, err = ParseCSV(bytes.NewReader(data))
	case FormatYAML, FormatJSON:
		// JSON is a subset of YAML; one decoder serves both.
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s machine: %w", format, err)
		}
		def, err = Decode(raw)
	default:
		return nil, fmt.Errorf("unsupported machine format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return Compile(def)
}

// Compile validates a definition and builds the machine.
func Compile(def domain.Definition) (*domain.Machine, error) {
	if err := schema.Validate(def); err != nil {
		return nil, fmt.Errorf("invalid machine %q: %w", def.Name, err)
	}
	return domain.NewMachine(def), nil
}

// ParseCSV reads the row-oriented description: name, states, input alphabet, tape
// alphabet, start, accept and reject rows, then one 5-field row per rule.
// Blank lines are ignored.
func ParseCSV(r io.Reader) (domain.Definition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header := make([][]string, 0, 7)
	var def domain.Definition
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return def, fmt.Errorf("failed to read csv machine: %w", err)
		}
		line++
		record = trimFields(record)

		if len(header) < 7 {
			header = append(header, record)
			continue
		}

		t, err := transitionFromFields(record)
		if err != nil {
			return def, fmt.Errorf("rule on record %d: %w", line, err)
		}
		def.Transitions = append(def.Transitions, t)
	}

	if len(header) < 7 {
		return def, fmt.Errorf("csv machine is truncated: expected 7 header rows, got %d", len(header))
	}

	def.Name = header[0][0]
	def.States = header[1]
	def.InputAlphabet = header[2]
	def.TapeAlphabet = header[3]
	def.Start = header[4][0]
	def.Accept = header[5][0]
	def.Reject = header[6][0]
	return def, nil
}

// Decode converts a generic map (YAML, JSON or frontmatter) into a definition.
// Scalars are weakly typed so numeric symbols such as 0 and 1 decode as strings, and
// each rule may be written as "q0,a,q1,b,R", as a 5-element list, or as a mapping.
func Decode(raw map[string]any) (domain.Definition, error) {
	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       transitionHook,
		WeaklyTypedInput: true,
		Result:           &def,
	})
	if err != nil {
		return def, err
	}
	if err := decoder.Decode(raw); err != nil {
		return def, fmt.Errorf("failed to decode machine: %w", err)
	}

	for i := range def.Transitions {
		move, err := domain.ParseDirection(string(def.Transitions[i].Move))
		if err != nil {
			return def, fmt.Errorf("transitions[%d]: %w", i, err)
		}
		def.Transitions[i].Move = move
	}
	return def, nil
}

var transitionType = reflect.TypeOf(domain.Transition{})

func transitionHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != transitionType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return transitionFromFields(trimFields(strings.Split(v, ",")))
	case []any:
		fields := make([]string, len(v))
		for i, f := range v {
			fields[i] = fmt.Sprint(f)
		}
		return transitionFromFields(trimFields(fields))
	}
	return data, nil
}

func transitionFromFields(fields []string) (domain.Transition, error) {
	if len(fields) != 5 {
		return domain.Transition{}, fmt.Errorf("expected 5 fields (state, read, next, write, move), got %d", len(fields))
	}
	move, err := domain.ParseDirection(fields[4])
	if err != nil {
		return domain.Transition{}, err
	}
	return domain.Transition{
		From:  fields[0],
		Read:  fields[1],
		Next:  fields[2],
		Write: fields[3],
		Move:  move,
	}, nil
}

func trimFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}
