package pmeta

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/tmultani945/log-parser-project/ds"
	"github.com/tmultani945/log-parser-project/packet/perrors"
)

type (
	// Collection maps normalized logcode ids to their metadata. A file may
	// carry a single logcode document or a {"logcodes": {...}} envelope.
	Collection struct {
		byLogcode map[string]*LogcodeMetadata
	}
	envelopeDocument struct {
		Logcodes map[string]json.RawMessage `json:"logcodes"`
	}
)

// NormalizeLogcodeID upper-cases a logcode id and ensures the 0x prefix,
// so "b888", "0xb888" and "0XB888" all address the same entry.
func NormalizeLogcodeID(logcodeID string) string {
	normalized := strings.TrimSpace(logcodeID)
	if !strings.HasPrefix(normalized, "0x") && !strings.HasPrefix(normalized, "0X") {
		normalized = "0x" + normalized
	}
	return "0x" + strings.ToUpper(normalized[2:])
}

func ParseLogcodeMetadata(bs []byte) (*LogcodeMetadata, error) {
	metadata := LogcodeMetadata{}
	if err := json.Unmarshal(bs, &metadata); err != nil {
		err := errors.Wrap(err, "ParseLogcodeMetadata error")
		return nil, err
	}
	metadata.LogcodeID = NormalizeLogcodeID(metadata.LogcodeID)
	for name, table := range metadata.Tables {
		table.Name = name
		table.Fields = lo.Map(
			table.Fields,
			func(field FieldDefinition, _ int) FieldDefinition {
				field.Kind = ParseKind(field.TypeName)
				return field
			},
		)
		metadata.Tables[name] = table
	}
	if err := validate(&metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}

// ParseCollection accepts either a single logcode document or a
// multi-logcode envelope.
func ParseCollection(bs []byte) (*Collection, error) {
	envelope := envelopeDocument{}
	if err := json.Unmarshal(bs, &envelope); err != nil {
		err := errors.Wrap(err, "ParseCollection error")
		return nil, err
	}

	collection := Collection{byLogcode: map[string]*LogcodeMetadata{}}
	if len(envelope.Logcodes) == 0 {
		metadata, err := ParseLogcodeMetadata(bs)
		if err != nil {
			return nil, err
		}
		collection.byLogcode[metadata.LogcodeID] = metadata
		return &collection, nil
	}

	for logcodeID, raw := range envelope.Logcodes {
		metadata, err := ParseLogcodeMetadata(raw)
		if err != nil {
			err := errors.Wrapf(err, `ParseCollection error at logcode "%s"`, logcodeID)
			return nil, err
		}
		if metadata.LogcodeID == "0x" {
			metadata.LogcodeID = NormalizeLogcodeID(logcodeID)
		}
		collection.byLogcode[NormalizeLogcodeID(logcodeID)] = metadata
	}
	return &collection, nil
}

func LoadFile(path string) (*Collection, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		err := errors.Wrapf(err, `LoadFile error reading "%s"`, path)
		return nil, err
	}
	return ParseCollection(bs)
}

func (r *Collection) Get(logcodeID string) (*LogcodeMetadata, error) {
	metadata, ok := r.byLogcode[NormalizeLogcodeID(logcodeID)]
	if !ok {
		return nil, perrors.LogcodeNotFoundError{LogcodeID: NormalizeLogcodeID(logcodeID)}
	}
	return metadata, nil
}

func (r *Collection) Logcodes() []string {
	logcodes := lo.Keys(r.byLogcode)
	sort.Strings(logcodes)
	return logcodes
}

// AvailableVersions lists the versions a logcode defines, ascending.
func (r LogcodeMetadata) AvailableVersions() []uint64 {
	versions := lo.Keys(r.VersionMap)
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions
}

func validate(metadata *LogcodeMetadata) error {
	for name, table := range metadata.Tables {
		for _, field := range table.Fields {
			if field.OffsetBits < 0 || field.OffsetBits > 7 {
				return perrors.MalformedInputError{
					Reason: fmt.Sprintf(
						`table "%s" field %s has offset_bits outside [0,7]`,
						name, ds.DumpJSON(field),
					),
				}
			}
			if field.LengthBits < 0 {
				return perrors.MalformedInputError{
					Reason: fmt.Sprintf(
						`table "%s" field %s has negative length_bits`,
						name, ds.DumpJSON(field),
					),
				}
			}
		}
	}
	return nil
}
