package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"

	"github.com/tmultani945/log-parser-project/export"
	"github.com/tmultani945/log-parser-project/packet"
	"github.com/tmultani945/log-parser-project/packet/pingest"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
	"github.com/tmultani945/log-parser-project/ui"
)

type (
	Args struct {
		Decode      *DecodeCmd      `arg:"subcommand:decode"`
		Versions    *VersionsCmd    `arg:"subcommand:versions"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive"`
		Config      string          `help:"path to decode policy config" placeholder:"config.yaml"`
	}
	DecodeCmd struct {
		Metadata string `arg:"required" help:"path to metadata JSON" placeholder:"metadata.json"`
		In       string `arg:"required" help:"path to packet file (hex text or raw binary)" placeholder:"packet.txt"`
		Out      string `help:"path to result JSON; stdout when omitted" placeholder:"out.json"`
		Force    bool   `help:"overwrite the destination file"`
	}
	VersionsCmd struct {
		Metadata string `arg:"required" help:"path to metadata JSON" placeholder:"metadata.json"`
		Logcode  string `arg:"required" help:"logcode id" placeholder:"0xB888"`
	}
	InteractiveCmd struct {
		Metadata string `arg:"required" help:"path to metadata JSON" placeholder:"metadata.json"`
	}
)

func (Args) Description() string {
	return strings.Join(
		[]string{
			"Decode binary log packets into named field values using",
			"pre-extracted field-layout metadata.",
		},
		"\n",
	) + "\n"
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	config, err := LoadConfig(args.Config)
	if err != nil {
		Fatalf("config error: %v", err)
	}
	if config.WarningsLog != "" {
		SetupRotatingLog(config.WarningsLog)
	}

	switch {
	case args.Decode != nil:
		if err := runDecode(args.Decode, config); err != nil {
			Fatalf("decode error: %v", err)
		}
	case args.Versions != nil:
		if err := runVersions(args.Versions); err != nil {
			Fatalf("versions error: %v", err)
		}
	case args.Interactive != nil:
		ui.Start(args.Interactive.Metadata, config.ToPolicy())
	default:
		parser.WriteHelp(os.Stdout)
	}
}

func runDecode(cmd *DecodeCmd, config *Config) error {
	collection, err := pmeta.LoadFile(cmd.Metadata)
	if err != nil {
		return err
	}
	decoder := packet.NewDecoder(collection, packet.WithPolicy(config.ToPolicy()))

	inputBytes, err := os.ReadFile(cmd.In)
	if err != nil {
		return errors.Wrapf(err, `reading "%s"`, cmd.In)
	}

	decoded, err := decodeInput(decoder, inputBytes)
	if err != nil {
		return err
	}
	for _, warning := range decoded.Warnings {
		Logf("warning: %s", warning)
	}

	resultBytes, err := export.ToJSON(*decoded, true)
	if err != nil {
		return err
	}
	if cmd.Out == "" {
		fmt.Println(string(resultBytes))
		return nil
	}
	if err := export.WriteFile(cmd.Out, resultBytes, cmd.Force); err != nil {
		return err
	}
	fmt.Println("Done decoding. Result written to: " + cmd.Out)
	return nil
}

// decodeInput accepts either the labeled hex-text layout or a raw binary
// packet. Text input is recognized by its "Header:" label.
func decodeInput(decoder *packet.Decoder, inputBytes []byte) (*packet.DecodedPacket, error) {
	if bytes.Contains(inputBytes, []byte("Header:")) || bytes.Contains(inputBytes, []byte("header:")) {
		parsed, err := pingest.Parse(string(inputBytes))
		if err != nil {
			return nil, err
		}
		return decoder.DecodePacket(parsed)
	}
	return decoder.Decode(inputBytes)
}

func runVersions(cmd *VersionsCmd) error {
	collection, err := pmeta.LoadFile(cmd.Metadata)
	if err != nil {
		return err
	}
	metadata, err := collection.Get(cmd.Logcode)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", metadata.LogcodeID, metadata.LogcodeName)
	for _, version := range metadata.AvailableVersions() {
		fmt.Printf("  %d -> Table %s\n", version, metadata.VersionMap[version])
	}
	return nil
}
