package ui

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"

	match "github.com/alexpantyukhin/go-pattern-match"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/tmultani945/log-parser-project/ds"
	"github.com/tmultani945/log-parser-project/export"
	"github.com/tmultani945/log-parser-project/packet"
	"github.com/tmultani945/log-parser-project/packet/pingest"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
	"github.com/tmultani945/log-parser-project/packet/prepeat"
)

const (
	StatePicking = "picking"
	StateDecoded = "decoded"
	StateFailed  = "failed"
)

type PacketPicker struct {
	metadataPath string
	policy       prepeat.Policy
	cwd          string
	fileNames    []string
	cursor       int
	state        string
	result       string
	err          error
}

func CreatePacketPicker(metadataPath string, policy prepeat.Policy) PacketPicker {
	cwd, err := os.Getwd()
	if err != nil {
		err := errors.Wrap(err, "CreatePacketPicker get current working directory error")
		log.Panic(err)
	}
	return PacketPicker{
		metadataPath: metadataPath,
		policy:       policy,
		cwd:          cwd,
		fileNames:    ReadDirectory(cwd),
		state:        StatePicking,
	}
}

func ReadDirectory(path string) []string {
	files, err := os.ReadDir(path)
	if err != nil {
		log.Fatal(err)
	}
	files = lo.Filter(
		files,
		func(t fs.DirEntry, _ int) bool {
			return !t.IsDir()
		},
	)
	return lo.Map(
		files,
		func(t fs.DirEntry, _ int) string {
			return t.Name()
		},
	)
}

func (s *PacketPicker) decodeSelected() {
	collection, err := pmeta.LoadFile(s.metadataPath)
	if err != nil {
		s.state, s.err = StateFailed, err
		return
	}
	inputBytes, err := os.ReadFile(s.fileNames[s.cursor])
	if err != nil {
		s.state, s.err = StateFailed, err
		return
	}

	decoder := packet.NewDecoder(collection, packet.WithPolicy(s.policy))
	decoded := (*packet.DecodedPacket)(nil)
	if bytes.Contains(inputBytes, []byte("Header:")) {
		parsed, err := pingest.Parse(string(inputBytes))
		if err != nil {
			s.state, s.err = StateFailed, err
			return
		}
		decoded, err = decoder.DecodePacket(parsed)
		if err != nil {
			s.state, s.err = StateFailed, err
			return
		}
	} else {
		decoded, err = decoder.Decode(inputBytes)
		if err != nil {
			s.state, s.err = StateFailed, err
			return
		}
	}

	resultBytes, err := export.ToJSON(*decoded, true)
	if err != nil {
		s.state, s.err = StateFailed, err
		return
	}
	s.state, s.result = StateDecoded, string(resultBytes)
}

func (s *PacketPicker) View() string {
	output := "LOG PACKET DECODER\n\n"
	output += "Current directory: " + s.cwd + "\n\n"

	_, bodyAny := match.
		Match(s.state).
		When(
			StatePicking,
			func() string {
				body := ""
				for i, name := range s.fileNames {
					marker := "  "
					if i == s.cursor {
						marker = "> "
					}
					body += marker + name + "\n"
				}
				body += "\nup/down to move, enter to decode, q to quit"
				return body
			},
		).
		When(
			StateDecoded,
			func() string {
				return s.result + "\n\nany key to go back, q to quit"
			},
		).
		When(
			StateFailed,
			func() string {
				return fmt.Sprintf("Decode failed: %v\n\nany key to go back, q to quit", s.err)
			},
		).
		When(
			match.ANY,
			func() string {
				err := errors.Wrapf(
					ds.ErrUnreachableCode{Caller: "PacketPicker.View"},
					`invalid state "%s"`, s.state,
				)
				log.Panic(err)
				return ""
			},
		).
		Result()
	return output + bodyAny.(string)
}

func (s *PacketPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if keyMsg.String() == "q" || keyMsg.String() == "ctrl+c" {
		return s, tea.Quit
	}

	if s.state != StatePicking {
		s.state = StatePicking
		return s, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.fileNames)-1 {
			s.cursor++
		}
	case "enter":
		if len(s.fileNames) > 0 {
			s.decodeSelected()
		}
	}
	return s, nil
}

func (s *PacketPicker) Init() tea.Cmd {
	return nil
}
