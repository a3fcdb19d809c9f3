package packet

import (
	"github.com/tmultani945/log-parser-project/packet/pderive"
	"github.com/tmultani945/log-parser-project/packet/perrors"
	"github.com/tmultani945/log-parser-project/packet/pexpand"
	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pheader"
	"github.com/tmultani945/log-parser-project/packet/pingest"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
	"github.com/tmultani945/log-parser-project/packet/prepeat"
	"github.com/tmultani945/log-parser-project/packet/pversion"
)

type (
	// Decoder decodes packets against a loaded metadata collection. The
	// collection is treated as read-only, so one Decoder is safe to share
	// across goroutines; every call allocates its own output.
	Decoder struct {
		collection *pmeta.Collection
		policy     prepeat.Policy
		registry   *pderive.Registry
	}
	Option func(*Decoder)
)

func WithPolicy(policy prepeat.Policy) Option {
	return func(d *Decoder) {
		d.policy = policy
	}
}

func WithRegistry(registry *pderive.Registry) Option {
	return func(d *Decoder) {
		d.registry = registry
	}
}

func NewDecoder(collection *pmeta.Collection, options ...Option) *Decoder {
	decoder := Decoder{
		collection: collection,
		policy:     prepeat.DefaultPolicy(),
		registry:   pderive.NewRegistry(),
	}
	for _, option := range options {
		option(&decoder)
	}
	return &decoder
}

// Decode decodes a raw wire packet: a 12-byte header followed by the
// payload.
func (r *Decoder) Decode(bs []byte) (*DecodedPacket, error) {
	if len(bs) < pheader.Size {
		return nil, perrors.PayloadTooShortError{
			RequiredBytes: pheader.Size,
			ActualBytes:   len(bs),
			FieldName:     "header",
		}
	}
	return r.decode(bs[:pheader.Size], bs[pheader.Size:])
}

// DecodePacket decodes an ingested hex-text packet.
func (r *Decoder) DecodePacket(parsed *pingest.Packet) (*DecodedPacket, error) {
	return r.decode(parsed.HeaderBytes, parsed.PayloadBytes)
}

func (r *Decoder) decode(headerBytes []byte, payload []byte) (*DecodedPacket, error) {
	header, err := pheader.Decode(headerBytes)
	if err != nil {
		return nil, err
	}

	metadata, err := r.collection.Get(header.LogcodeHex())
	if err != nil {
		return nil, err
	}

	versionInfo, err := pversion.Resolve(payload, metadata)
	if err != nil {
		return nil, err
	}

	layout, ok := metadata.Tables[versionInfo.TableName]
	if !ok || len(layout.Fields) == 0 {
		return nil, perrors.VersionNotFoundError{
			LogcodeID: metadata.LogcodeID,
			Version:   versionInfo.Value,
		}
	}

	// Layout fields start after the version prefix; expansion shifts every
	// placement accordingly and flattens non-repeating table references.
	placements := pexpand.Expand(
		layout.Fields,
		metadata.Tables,
		metadata.VersionOffsetBytes()*8,
	)

	fields := make([]pfield.DecodedField, 0, len(placements))
	warnings := []string(nil)
	for _, placement := range placements {
		if placement.Def.Repeating() {
			records, recordWarnings := prepeat.Decode(
				payload, placement, metadata.Tables, fields, r.policy,
			)
			fields = append(fields, records...)
			warnings = append(warnings, recordWarnings...)
			continue
		}

		field, err := pfield.Decode(payload, placement)
		if err != nil {
			// recovered: one bad field must not lose the rest
			warnings = append(warnings, err.Error())
			continue
		}
		fields = append(fields, *field)
	}

	r.registry.Apply(metadata.LogcodeID, fields)

	return &DecodedPacket{
		LogcodeIDHex:     metadata.LogcodeID,
		LogcodeIDDecimal: header.LogcodeID,
		LogcodeName:      metadata.LogcodeName,
		Version:          *versionInfo,
		Header:           *header,
		Fields:           fields,
		Summary: Summary{
			Section:          metadata.Section,
			PayloadSizeBytes: len(payload),
			FieldsDecoded:    len(fields),
		},
		Warnings: warnings,
	}, nil
}
