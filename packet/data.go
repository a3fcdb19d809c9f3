// Package packet wires the decode pipeline: header decode, version
// resolution, layout expansion, field-by-field extraction with
// repeating-structure handling, and derived-field post-processing.
package packet

import (
	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pheader"
	"github.com/tmultani945/log-parser-project/packet/pversion"
)

type (
	// DecodedPacket is the complete decode result. It is constructed once
	// per decode call and not mutated afterward.
	DecodedPacket struct {
		LogcodeIDHex     string                `json:"logcode_id"`
		LogcodeIDDecimal int                   `json:"logcode_id_decimal"`
		LogcodeName      string                `json:"logcode_name"`
		Version          pversion.Info         `json:"version"`
		Header           pheader.Header        `json:"header"`
		Fields           []pfield.DecodedField `json:"fields"`
		Summary          Summary               `json:"metadata"`
		// Warnings carry recovered per-field failures; the rest of the
		// packet decoded normally.
		Warnings []string `json:"warnings,omitempty"`
	}
	Summary struct {
		Section          string `json:"section"`
		PayloadSizeBytes int    `json:"payload_size_bytes"`
		FieldsDecoded    int    `json:"fields_decoded"`
	}
)
